/*
 * @Description: 远程接口客户端，统一处理 {code, message, data} 返回结构
 * @Author: 安知鱼
 * @Date: 2026-10-17 10:52:19
 * @LastEditTime: 2026-10-17 11:40:03
 * @LastEditors: 安知鱼
 */
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/response"
)

// RequestIDHeader 每次调用携带的请求ID头
const RequestIDHeader = "X-Request-ID"

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 4 << 20
)

// TokenSource 返回当前的 Bearer token，空字符串表示匿名调用
type TokenSource func() string

// Options 客户端配置
type Options struct {
	BaseURL string
	// Token 固定 token；设置了 TokenSource 时以 TokenSource 为准
	Token       string
	TokenSource TokenSource
	Timeout     time.Duration
	// RateLimit 每秒允许的请求数，<= 0 表示不限速
	RateLimit  float64
	HTTPClient *http.Client
}

// Client 是远程接口的 HTTP 客户端，可被多个 goroutine 并发使用
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   TokenSource
	timeout time.Duration
	limiter *rate.Limiter
	now     func() time.Time
}

// New 创建客户端
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("远程接口地址不能为空")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("解析远程接口地址 '%s' 失败: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("不支持的远程接口协议: %q", base.Scheme)
	}

	c := &Client{
		baseURL: base,
		http:    opts.HTTPClient,
		token:   opts.TokenSource,
		timeout: opts.Timeout,
		now:     time.Now,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.token == nil {
		token := opts.Token
		c.token = func() string { return token }
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c, nil
}

// FetchContent 加载单个内容条目及其评论。
// 随笔没有单条查询接口，从列表中查找。
func (c *Client) FetchContent(ctx context.Context, kind model.ContentKind, contentID, viewerID uint) (*model.ContentPayload, error) {
	switch kind {
	case model.KindBlog:
		var dto BlogDTO
		if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/blog/%d", contentID), viewerQuery(viewerID), nil, &dto); err != nil {
			return nil, err
		}
		payload := dto.ToPayload()
		return &payload, nil
	case model.KindEssay:
		essays, err := c.FetchEssays(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		for i := range essays {
			if essays[i].Item.ID == contentID {
				return &essays[i], nil
			}
		}
		return nil, fmt.Errorf("%w: 随笔 %d", constant.ErrNotFound, contentID)
	}
	return nil, fmt.Errorf("未知的内容类型: %s", kind)
}

// FetchEssays 加载随笔列表，顺序与服务端返回一致
func (c *Client) FetchEssays(ctx context.Context, viewerID uint) ([]model.ContentPayload, error) {
	var dtos []EssayDTO
	if err := c.do(ctx, http.MethodGet, "/essays", viewerQuery(viewerID), nil, &dtos); err != nil {
		return nil, err
	}
	now := c.now()
	payloads := make([]model.ContentPayload, 0, len(dtos))
	for i := range dtos {
		payloads = append(payloads, dtos[i].ToPayload(now))
	}
	return payloads, nil
}

// SetLike 提交点赞意图（liked 为操作后的目标状态）
func (c *Client) SetLike(ctx context.Context, kind model.ContentKind, contentID, viewerID uint, liked bool) error {
	req := likeRequest{UserID: viewerID, IsLike: liked}
	var path string
	switch kind {
	case model.KindBlog:
		req.BlogID = &contentID
		path = fmt.Sprintf("/blog/%d/like", contentID)
	case model.KindEssay:
		req.EssayID = &contentID
		path = fmt.Sprintf("/essays/%d/like", contentID)
	default:
		return fmt.Errorf("未知的内容类型: %s", kind)
	}
	return c.do(ctx, http.MethodPost, path, nil, req, nil)
}

// CreateComment 创建评论，返回服务端分配的评论ID
func (c *Client) CreateComment(ctx context.Context, kind model.ContentKind, contentID uint, draft model.CommentDraft) (uint, error) {
	var (
		path string
		body interface{}
	)
	switch kind {
	case model.KindBlog:
		path = "/comments"
		body = blogCommentRequest{
			Content:  draft.Content,
			BlogID:   contentID,
			UserID:   draft.UserID,
			ParentID: parentToWire(draft.ParentID),
		}
	case model.KindEssay:
		path = fmt.Sprintf("/essays/%d/comments", contentID)
		body = essayCommentRequest{
			UserID:          draft.UserID,
			Content:         draft.Content,
			ParentCommentID: parentToWire(draft.ParentID),
		}
	default:
		return 0, fmt.Errorf("未知的内容类型: %s", kind)
	}

	var created createdDTO
	if err := c.do(ctx, http.MethodPost, path, nil, body, &created); err != nil {
		return 0, err
	}
	if created.ID == 0 {
		return 0, &StatusError{HTTPStatus: http.StatusOK, Code: http.StatusOK, Message: "返回结果缺少评论ID", Path: path}
	}
	return created.ID, nil
}

// DeleteComment 删除评论。服务端沿用 GET 形式的删除接口。
func (c *Client) DeleteComment(ctx context.Context, kind model.ContentKind, commentID uint) error {
	var path string
	switch kind {
	case model.KindBlog:
		path = fmt.Sprintf("/comments/%d/delete", commentID)
	case model.KindEssay:
		path = fmt.Sprintf("/essays/comments/%d/delete", commentID)
	default:
		return fmt.Errorf("未知的内容类型: %s", kind)
	}
	return c.do(ctx, http.MethodGet, path, nil, nil, nil)
}

func viewerQuery(viewerID uint) url.Values {
	if viewerID == 0 {
		return nil
	}
	return url.Values{"userId": []string{strconv.FormatUint(uint64(viewerID), 10)}}
}

// do 发送请求并解码返回结构。非 200 的 code 返回 *StatusError，
// 网络错误、超时和无法解析的返回包装为 constant.ErrTransport。
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: 等待限流失败: %v", constant.ErrTransport, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("序列化请求失败: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("%w: 构造请求失败: %v", constant.ErrTransport, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[RemoteClient] %s %s (request=%s) 失败: %v", method, path, requestID, err)
		return fmt.Errorf("%w: %s %s: %v", constant.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: 读取返回失败: %v", constant.ErrTransport, err)
	}

	var env response.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &StatusError{HTTPStatus: resp.StatusCode, Code: resp.StatusCode, Path: path}
		}
		return fmt.Errorf("%w: 解析返回失败: %v", constant.ErrTransport, err)
	}
	if !env.OK() || resp.StatusCode != http.StatusOK {
		log.Printf("[RemoteClient] %s %s (request=%s) 被拒绝: http=%d code=%d %s", method, path, requestID, resp.StatusCode, env.Code, env.Message)
		return &StatusError{HTTPStatus: resp.StatusCode, Code: env.Code, Message: env.Message, Path: path}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: 解析 data 失败: %v", constant.ErrTransport, err)
		}
	}
	return nil
}
