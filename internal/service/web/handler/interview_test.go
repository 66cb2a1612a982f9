package handler

import (
	"testing"

	"github.com/solutions/meet-cube/internal/protodef/model"
)

func interviewItems(n int) []model.InterviewResponse {
	items := make([]model.InterviewResponse, n)
	for i := range items {
		items[i] = model.InterviewResponse{ID: string(rune('a' + i))}
	}
	return items
}

func TestInterviewListResponsePaging(t *testing.T) {
	// 25条记录，页大小10：前两页未到底，第三页到底。
	resp := newInterviewListResponse(interviewItems(10), 25, 1, 10)
	if resp.Total != 25 || resp.Cnt != 10 || resp.CurrentPageNum != 1 {
		t.Fatalf("page 1: got total=%d cnt=%d page=%d", resp.Total, resp.Cnt, resp.CurrentPageNum)
	}
	if resp.EndPage || resp.NextPageNum != 2 {
		t.Fatalf("page 1: endPage=%v next=%d", resp.EndPage, resp.NextPageNum)
	}

	resp = newInterviewListResponse(interviewItems(5), 25, 3, 10)
	if !resp.EndPage || resp.NextPageNum != 3 {
		t.Fatalf("page 3: endPage=%v next=%d", resp.EndPage, resp.NextPageNum)
	}
	if resp.Cnt != 5 {
		t.Fatalf("page 3: cnt=%d", resp.Cnt)
	}
}

func TestInterviewListResponseEmpty(t *testing.T) {
	resp := newInterviewListResponse(nil, 0, 1, 10)
	if !resp.EndPage || resp.Total != 0 || resp.Cnt != 0 {
		t.Fatalf("got endPage=%v total=%d cnt=%d", resp.EndPage, resp.Total, resp.Cnt)
	}
	if len(resp.List) != 0 {
		t.Fatalf("expected empty list, got %d items", len(resp.List))
	}
}

func TestInterviewListResponseDefaults(t *testing.T) {
	// 分页参数缺省回落到1/10。
	resp := newInterviewListResponse(interviewItems(3), 3, 0, 0)
	if resp.CurrentPageNum != 1 || resp.PageSize != 10 {
		t.Fatalf("got page=%d size=%d", resp.CurrentPageNum, resp.PageSize)
	}
	if !resp.EndPage {
		t.Fatal("expected single page to be end page")
	}
}
