package interfaces

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"BaseWars/internal/base"
	"BaseWars/internal/base/resource"
	"BaseWars/internal/observe/interfaces/handler"
	"BaseWars/internal/report"
	"BaseWars/internal/shared/transport"
	transporthttp "BaseWars/internal/shared/transport/http"
	"BaseWars/internal/shared/transport/ws"
)

type stubBase struct{ st base.Status }

func (s stubBase) Status() base.Status { return s.st }

type stubReports struct {
	reports []report.WarReport
	limit   int
}

func (s *stubReports) List(ctx context.Context, limit int) ([]report.WarReport, error) {
	s.limit = limit
	if limit < len(s.reports) {
		return s.reports[:limit], nil
	}
	return s.reports, nil
}

func newObserver() (*handler.Observer, *stubReports) {
	reps := &stubReports{reports: []report.WarReport{
		{ID: "r2", Winner: "Durotar"},
		{ID: "r1", Winner: "Lordaeron"},
	}}
	o := handler.NewObserver(reps,
		stubBase{base.Status{Name: "Lordaeron", Stock: resource.Stock{Gold: 10}}},
		stubBase{base.Status{Name: "Durotar", Footmen: 3}},
	)
	return o, reps
}

func newHTTP(t *testing.T) (nethttp.Handler, *stubReports) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	o, reps := newObserver()
	s := transporthttp.NewHttpServer(":0", gin.New(), nil)
	New(o, nethttp.NotFoundHandler(), nil).HttpRegister(s.Group())
	return s.Handler(), reps
}

func get(t *testing.T, h nethttp.Handler, path string, data any) int {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, path, nil))
	if w.Code != nethttp.StatusOK {
		t.Fatalf("%s 期望 HTTP 200，got=%d", path, w.Code)
	}
	var resp struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s 响应不是 json: %v", path, err)
	}
	if data != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, data); err != nil {
			t.Fatalf("%s data 解析失败: %v", path, err)
		}
	}
	return resp.Code
}

func TestHttp_Bases_返回两座基地(t *testing.T) {
	h, _ := newHTTP(t)
	var got []base.Status
	if code := get(t, h, "/bases", &got); code != transport.OK {
		t.Fatalf("期望 OK，got=%d", code)
	}
	if len(got) != 2 || got[0].Name != "Lordaeron" || got[1].Footmen != 3 {
		t.Fatalf("基地列表不符合预期: %+v", got)
	}
}

func TestHttp_Base_未知基地(t *testing.T) {
	h, _ := newHTTP(t)
	var st base.Status
	if code := get(t, h, "/bases/Durotar", &st); code != transport.OK || st.Footmen != 3 {
		t.Fatalf("期望查到 Durotar，code=%d st=%+v", code, st)
	}
	if code := get(t, h, "/bases/Stormwind", nil); code != transport.NotFound {
		t.Fatalf("期望 NotFound，got=%d", code)
	}
}

func TestHttp_Reports_limit(t *testing.T) {
	h, reps := newHTTP(t)
	var got []report.WarReport
	if code := get(t, h, "/reports", &got); code != transport.OK || len(got) != 2 {
		t.Fatalf("期望默认返回全部战报，code=%d len=%d", code, len(got))
	}
	if reps.limit != handler.DefaultReportLimit {
		t.Fatalf("期望默认 limit=%d，got=%d", handler.DefaultReportLimit, reps.limit)
	}
	got = nil
	if code := get(t, h, "/reports?limit=1", &got); code != transport.OK || len(got) != 1 || got[0].ID != "r2" {
		t.Fatalf("期望只返回最新一份，code=%d got=%+v", code, got)
	}
	if code := get(t, h, "/reports?limit=100000", nil); code != transport.InvalidParam {
		t.Fatalf("期望 limit 越界被拒绝，got=%d", code)
	}
	if code := get(t, h, "/reports?limit=abc", nil); code != transport.InvalidParam {
		t.Fatalf("期望非法 limit 被拒绝，got=%d", code)
	}
}

type propConn struct {
	ws.WSConn
	props map[string]any
}

func (c *propConn) SetProperty(k string, v any) { c.props[k] = v }
func (c *propConn) GetProperty(k string) any { return c.props[k] }
func (c *propConn) RemoveProperty(k string) { delete(c.props, k) }

func dispatch(r *ws.Router, conn ws.WSConn, name string, msg any) *ws.RespBody {
	resp := &ws.WsMsgResp{Body: &ws.RespBody{Name: name}}
	r.Dispatch(&ws.WsMsgReq{Body: &ws.ReqBody{Name: name, Msg: msg}, Conn: conn}, resp)
	return resp.Body
}

func TestWs_路由(t *testing.T) {
	o, _ := newObserver()
	r := ws.NewRouter(nil)
	New(o, nil, nil).WsRegister(r)
	conn := &propConn{props: map[string]any{}}

	if b := dispatch(r, conn, "base.list", nil); b.Code != transport.OK {
		t.Fatalf("base.list 期望 OK，got=%d", b.Code)
	}
	b := dispatch(r, conn, "base.status", map[string]any{"name": "Lordaeron"})
	if st, ok := b.Msg.(base.Status); !ok || st.Stock.Gold != 10 {
		t.Fatalf("base.status 期望返回 Lordaeron 状态，got=%+v", b)
	}
	if b := dispatch(r, conn, "base.status", map[string]any{"name": "x"}); b.Code != transport.NotFound {
		t.Fatalf("未知基地期望 NotFound，got=%d", b.Code)
	}
	if b := dispatch(r, conn, "report.list", map[string]any{"limit": 1}); b.Code != transport.OK {
		t.Fatalf("report.list 期望 OK，got=%d", b.Code)
	}

	if b := dispatch(r, conn, "feed.subscribe", map[string]any{"name": "Durotar"}); b.Code != transport.OK {
		t.Fatalf("feed.subscribe 期望 OK，got=%d", b.Code)
	}
	if conn.props[ws.ConnKeyBase] != "Durotar" {
		t.Fatalf("期望连接订阅 Durotar，got=%v", conn.props[ws.ConnKeyBase])
	}
	if b := dispatch(r, conn, "feed.subscribe", map[string]any{"name": "nowhere"}); b.Code != transport.NotFound {
		t.Fatalf("订阅未知基地期望 NotFound，got=%d", b.Code)
	}
	dispatch(r, conn, "feed.subscribe", map[string]any{})
	if _, ok := conn.props[ws.ConnKeyBase]; ok {
		t.Fatalf("期望空 name 取消过滤")
	}
}
