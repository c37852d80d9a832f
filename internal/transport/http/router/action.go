package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-rbac-service/internal/service"
	resp "go-rbac-service/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func NotFound(msg string) error   { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error   { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// fromService 业务哨兵错误 → 错误码；未识别的一律 500
func fromService(err error) *AErr {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return &AErr{Code: resp.CodeNotFound, Msg: err.Error()}
	case errors.Is(err, service.ErrConflict):
		return &AErr{Code: resp.CodeConflict, Msg: err.Error()}
	case errors.Is(err, service.ErrBadRequest):
		return &AErr{Code: resp.CodeBadRequest, Msg: err.Error()}
	case errors.Is(err, service.ErrUnauthorized):
		return &AErr{Code: resp.CodeUnauthorized, Msg: "invalid credentials"}
	default:
		return &AErr{Code: resp.CodeServerError, Err: err}
	}
}

// Action 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "PATCH" | "DELETE"
	Path    string
	Binder  Binder
	Status  int // 成功状态码；默认 200，204 不写响应体
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 一行注册动作接口；错误码同时落到 HTTP 状态和响应体
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			var ae *AErr
			if !errors.As(err, &ae) {
				ae = fromService(err)
			}
			c.JSON(resp.HTTPStatus(ae.Code), resp.Error(ae.Code, ae.Error()))
			return
		}

		if a.Status == http.StatusNoContent {
			c.Status(http.StatusNoContent)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// actor 审计字段来源：已登录用户的 uid，匿名为 nil
func actor(c *gin.Context) *string {
	if uid := c.GetString("userId"); uid != "" {
		return &uid
	}
	return nil
}
