package api_models

// Envelope is the uniform response body every endpoint answers with.
// Code carries the application code (200/201/204/400/404), which is
// not always the HTTP status: success envelopes go out as HTTP 200,
// failures the original flagged with res.status(400) go out as 400.
type Envelope struct {
	Code    int         `json:"code"`
	Msg     string      `json:"msg"`
	Success bool        `json:"success"`
	Result  interface{} `json:"result"`
}

func OK(result interface{}) Envelope {
	return Envelope{Code: 200, Msg: "success", Success: true, Result: result}
}

func Created() Envelope {
	return Envelope{Code: 201, Msg: "success", Success: true, Result: "ok"}
}

func Updated(result interface{}) Envelope {
	return Envelope{Code: 204, Msg: "success", Success: true, Result: result}
}

func Failed(code int, msg string, result interface{}) Envelope {
	return Envelope{Code: code, Msg: msg, Success: false, Result: result}
}
