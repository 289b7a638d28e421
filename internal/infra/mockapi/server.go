/*
 * @Description: 本地模拟的博客公共接口，用于命令行调试和测试
 * @Author: 安知鱼
 * @Date: 2026-10-17 11:45:30
 * @LastEditTime: 2026-10-17 12:31:44
 * @LastEditors: 安知鱼
 */
package mockapi

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-interact/internal/infra/remote"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/response"
)

// Server 实现了与远程接口相同协议的内存版本
type Server struct {
	data   *memoryData
	engine *gin.Engine
}

// New 创建模拟接口，路由挂在 /api/public 下
func New() *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{data: newMemoryData(), engine: gin.New()}
	s.engine.Use(gin.Recovery(), s.recordRequest())
	s.registerRoutes(s.engine.Group("/api/public"))
	return s
}

// Handler 返回 http.Handler，便于 httptest 使用
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run 监听端口，阻塞直到出错
func (s *Server) Run(addr string) error {
	log.Printf("[MockAPI] 模拟接口已启动: http://%s/api/public", addr)
	return http.ListenAndServe(addr, s.engine)
}

// SeedContent 写入一个内容条目及其评论
func (s *Server) SeedContent(item model.ContentItem, comments []model.Comment) {
	s.data.seed(item, comments)
}

// SeedUser 登记用户，新评论的作者信息从这里读取
func (s *Server) SeedUser(v model.Viewer) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	s.data.users[v.UserID] = v
}

// FailNext 让某类接口的下一次调用按 mode 失败，可多次调用排队
func (s *Server) FailNext(op Operation, mode FailureMode) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	s.data.failures[op] = append(s.data.failures[op], mode)
}

// Requests 返回已收到的请求记录
func (s *Server) Requests() []RequestRecord {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	return append([]RequestRecord(nil), s.data.requests...)
}

// CountRequests 统计某类接口被调用的次数
func (s *Server) CountRequests(op Operation) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Operation == op {
			n++
		}
	}
	return n
}

// Content 读取服务端当前保存的内容，viewerID 决定 IsLiked
func (s *Server) Content(kind model.ContentKind, id, viewerID uint) (model.ContentPayload, bool) {
	return s.data.get(kind, id, viewerID)
}

func (s *Server) registerRoutes(api *gin.RouterGroup) {
	api.GET("/blog/:id", s.withFailure(OpFetch, s.getBlog))
	api.POST("/blog/:id/like", s.withFailure(OpLike, s.like(model.KindBlog)))
	api.POST("/comments", s.withFailure(OpComment, s.createBlogComment))
	api.GET("/comments/:id/delete", s.withFailure(OpDelete, s.deleteComment(model.KindBlog)))

	api.GET("/essays", s.withFailure(OpFetch, s.listEssays))
	api.POST("/essays/:id/like", s.withFailure(OpLike, s.like(model.KindEssay)))
	api.POST("/essays/:id/comments", s.withFailure(OpComment, s.createEssayComment))
	api.GET("/essays/comments/:id/delete", s.withFailure(OpDelete, s.deleteComment(model.KindEssay)))
}

const operationKey = "mock_operation"

func (s *Server) recordRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		op, _ := c.Get(operationKey)
		rec := RequestRecord{
			Method:        c.Request.Method,
			Path:          c.Request.URL.Path,
			RequestID:     c.GetHeader(remote.RequestIDHeader),
			Authorization: c.GetHeader("Authorization"),
		}
		if o, ok := op.(Operation); ok {
			rec.Operation = o
		}
		s.data.mu.Lock()
		s.data.requests = append(s.data.requests, rec)
		s.data.mu.Unlock()
	}
}

// withFailure 在处理请求前检查是否有待注入的失败
func (s *Server) withFailure(op Operation, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(operationKey, op)
		mode, fail := s.data.takeFailure(op)
		if !fail {
			next(c)
			return
		}
		switch mode {
		case FailHTTP:
			response.Fail(c, http.StatusInternalServerError, "服务器内部错误")
		case FailGarbage:
			c.String(http.StatusBadGateway, "<html>bad gateway</html>")
		default:
			response.FailInBody(c, http.StatusInternalServerError, "操作失败")
		}
	}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, http.StatusBadRequest, "ID无效")
		return 0, false
	}
	return uint(id), true
}

func viewerParam(c *gin.Context) uint {
	id, _ := strconv.ParseUint(c.Query("userId"), 10, 64)
	return uint(id)
}

func (s *Server) getBlog(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	payload, found := s.data.get(model.KindBlog, id, viewerParam(c))
	if !found {
		response.Fail(c, http.StatusNotFound, "文章不存在")
		return
	}
	response.Success(c, toBlogDTO(payload), "获取成功")
}

func (s *Server) listEssays(c *gin.Context) {
	payloads := s.data.list(model.KindEssay, viewerParam(c))
	dtos := make([]remote.EssayDTO, 0, len(payloads))
	for _, p := range payloads {
		dtos = append(dtos, toEssayDTO(p))
	}
	response.Success(c, dtos, "获取成功")
}

type likeBody struct {
	UserID uint `json:"userId"`
	IsLike bool `json:"isLike"`
}

func (s *Server) like(kind model.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req likeBody
		if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
			response.Fail(c, http.StatusBadRequest, "请求参数错误")
			return
		}
		if !strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
			response.Fail(c, http.StatusUnauthorized, "请先登录")
			return
		}
		if !s.data.setLike(kind, id, req.UserID, req.IsLike) {
			response.Fail(c, http.StatusNotFound, "内容不存在")
			return
		}
		response.Success(c, nil, "操作成功")
	}
}

type blogCommentBody struct {
	Content  string `json:"content"`
	BlogID   uint   `json:"blogId"`
	UserID   uint   `json:"userId"`
	ParentID int64  `json:"parentId"`
}

type essayCommentBody struct {
	UserID          uint   `json:"userId"`
	Content         string `json:"content"`
	ParentCommentID int64  `json:"parentCommentId"`
}

func wireParent(p int64) *uint {
	if p <= 0 {
		return nil
	}
	id := uint(p)
	return &id
}

func (s *Server) createBlogComment(c *gin.Context) {
	var req blogCommentBody
	if err := c.ShouldBindJSON(&req); err != nil || req.BlogID == 0 {
		response.Fail(c, http.StatusBadRequest, "请求参数错误")
		return
	}
	s.createComment(c, model.KindBlog, req.BlogID, model.CommentDraft{
		UserID: req.UserID, Content: req.Content, ParentID: wireParent(req.ParentID),
	})
}

func (s *Server) createEssayComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req essayCommentBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数错误")
		return
	}
	s.createComment(c, model.KindEssay, id, model.CommentDraft{
		UserID: req.UserID, Content: req.Content, ParentID: wireParent(req.ParentCommentID),
	})
}

func (s *Server) createComment(c *gin.Context, kind model.ContentKind, contentID uint, draft model.CommentDraft) {
	if strings.TrimSpace(draft.Content) == "" {
		response.Fail(c, http.StatusBadRequest, "评论内容不能为空")
		return
	}
	commentID, ok := s.data.addComment(kind, contentID, draft)
	if !ok {
		response.Fail(c, http.StatusNotFound, "内容不存在")
		return
	}
	response.Success(c, gin.H{"id": commentID}, "评论成功")
}

func (s *Server) deleteComment(kind model.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if !s.data.deleteComment(kind, id) {
			response.Fail(c, http.StatusNotFound, "评论不存在")
			return
		}
		response.Success(c, nil, "删除成功")
	}
}
