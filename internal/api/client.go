package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenProvider は各リクエストに付けるBearerトークンを返す。
// 未ログインなら空文字（Authorizationヘッダを付けない）。
type TokenProvider interface {
	Token() string
}

// TokenFunc はクロージャをTokenProviderにする。
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// StaticToken は固定トークン（テスト用）。
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Client はストアAPIのRESTクライアント。
type Client struct {
	baseURL string
	http    *http.Client
	creds   TokenProvider
}

func NewClient(baseURL string, creds TokenProvider, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
	}
}

// SetCredentials は配線時に一度だけ呼ぶ（SessionがClientに依存するため後差し）。
func (c *Client) SetCredentials(creds TokenProvider) {
	c.creds = creds
}

// サーバのエラーボディ {"message": "..."}
type errorBody struct {
	Message string `json:"message"`
}

// doJSON はJSONリクエスト1回分。失敗は必ず*APIErrorに畳む。
// fallbackはエラーボディが無い/壊れている場合のメッセージ。
func (c *Client) doJSON(ctx context.Context, method, path string, header http.Header, body any, out any, fallback string) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fallback, cause: err}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &APIError{Message: fallback, cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.creds != nil {
		if tok := c.creds.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: fallback, cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: fallback, cause: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		if err := json.Unmarshal(respBody, &eb); err == nil && eb.Message != "" {
			return NewAPIError(resp.StatusCode, eb.Message)
		}
		//エラーボディが無い/壊れていても呼び出し側は落とさない
		return NewAPIError(resp.StatusCode, fallback)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &APIError{Status: resp.StatusCode, Message: fallback, cause: err}
		}
	}
	return nil
}
