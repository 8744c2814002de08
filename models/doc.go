// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateMemberRequest: name, emoji
  - SpinRequest: member_ids, twist_type

# Response Types

  - ListMembersResponse: members
  - SpinResult: session_id, order, twist_type, twist_applied, twist_description
  - StatsResponse: days, since, no_data, stats
  - TwistsResponse: twists
  - MessageResponse, ErrorResponse

# Domain Types

  - Member: registered team member (soft-deleted via IsActive)
  - OrderRecord: one persisted (session, member, position) row
  - MemberStats: aggregated first/last/total/average position

TwistNone ("none") is stored as the twist type of records whose spin did not
actually apply a twist.
*/
package models
