package actors

import "BaseWars/internal/report"

// FinishWar 请求结算一场战争；响应为 *FinishWarReply。
type FinishWar struct {
	Result report.Result
}

type FinishWarReply struct {
	Report *report.WarReport
	Err    error
}

// ListReports 请求已归档的战报；响应为 *ListReportsReply。
type ListReports struct {
	Limit int
}

type ListReportsReply struct {
	Reports []report.WarReport
	Err     error
}
