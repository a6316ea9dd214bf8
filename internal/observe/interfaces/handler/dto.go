package handler

type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func Success(code int, data any) Resp {
	return Resp{Code: code, Data: data}
}

func Error(code int, msg string) Resp {
	return Resp{Code: code, Msg: msg}
}

type ReportsReq struct {
	Limit int `json:"limit" form:"limit"`
}

type BaseReq struct {
	Name string `json:"name" form:"name"`
}
