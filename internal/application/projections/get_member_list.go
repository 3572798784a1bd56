package projections

import (
	"context"
	"time"

	storagemember "fitclub/internal/adapters/storage/member"
	"fitclub/internal/application/listutil"
	"fitclub/internal/domain/member"
	"fitclub/internal/domain/membership"
)

// GetMemberListQuery carries query parameters.
type GetMemberListQuery struct {
	listutil.ListParams
	MembershipType string
	Status         string
}

// MemberRow is one member prepared for the index view.
type MemberRow struct {
	member.Member
	DaysRemaining int
	Expired       bool
	ExpiringSoon  bool
}

// GetMemberListResult carries the query result.
type GetMemberListResult struct {
	Members  []MemberRow
	PageInfo listutil.PageInfo
}

// GetMemberListDeps holds dependencies for GetMemberList.
type GetMemberListDeps struct {
	MemberStore MemberStore
}

// MemberSortColumns are the columns the member index may be sorted by.
var MemberSortColumns = []string{"first_name", "last_name", "membership_expiry_date", "created_at"}

// QueryGetMemberList retrieves one page of members with expiry annotations.
// PRE: query params have been parsed with listutil
// POST: Returns a page of members plus pagination metadata
func QueryGetMemberList(ctx context.Context, query GetMemberListQuery, deps GetMemberListDeps, now time.Time) (GetMemberListResult, error) {
	today := membership.Truncate(now)
	filter := storagemember.ListFilter{
		Name:           query.Search,
		MembershipType: query.MembershipType,
		Status:         query.Status,
		Sort:           query.Sort,
		Dir:            query.Dir,
		Limit:          query.PerPage,
		Offset:         (query.Page - 1) * query.PerPage,
	}

	total, err := deps.MemberStore.Count(ctx, filter)
	if err != nil {
		return GetMemberListResult{}, err
	}

	members, err := deps.MemberStore.List(ctx, filter)
	if err != nil {
		return GetMemberListResult{}, err
	}

	rows := make([]MemberRow, 0, len(members))
	for _, m := range members {
		days := membership.DaysUntil(m.ExpiryDate, today)
		rows = append(rows, MemberRow{
			Member:        m,
			DaysRemaining: days,
			Expired:       !m.ExpiryDate.IsZero() && m.ExpiryDate.Before(today),
			ExpiringSoon:  days >= 0 && days <= membership.ExpiryWarningDays,
		})
	}

	return GetMemberListResult{
		Members:  rows,
		PageInfo: listutil.NewPageInfo(query.Page, query.PerPage, total),
	}, nil
}
