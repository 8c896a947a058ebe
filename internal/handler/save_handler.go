package handler

import (
	"time"

	"savings-core/internal/handler/request"
	"savings-core/internal/handler/response"
	"savings-core/internal/save"
	"savings-core/internal/service"
	"savings-core/pkg/errno"
	"savings-core/pkg/validator"

	"github.com/gin-gonic/gin"
)

// SessionResponse 会话及其当前状态
type SessionResponse struct {
	ID        string       `json:"id"`
	Account   string       `json:"account"`
	Version   save.Version `json:"version"`
	CreatedAt time.Time    `json:"created_at"`
	State     save.State   `json:"state"`
}

func newSessionResponse(sess *service.Session, st save.State) SessionResponse {
	return SessionResponse{
		ID:        sess.ID,
		Account:   sess.Account,
		Version:   sess.Version,
		CreatedAt: sess.CreatedAt,
		State:     st,
	}
}

type SaveHandler struct {
	service service.SaveService
}

func NewSaveHandler(svc service.SaveService) *SaveHandler {
	return &SaveHandler{service: svc}
}

// CreateSession 打开存取表单
// @Summary 创建储蓄表单会话
// @Description 为储户创建表单，立即拉取一次行情
// @Tags Save
// @Accept json
// @Produce json
// @Param request body request.CreateSessionRequest true "储户地址和合约版本"
// @Success 200 {object} response.Response{data=SessionResponse}
// @Router /api/v1/save/sessions [post]
func (h *SaveHandler) CreateSession(c *gin.Context) {
	var req request.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	sess, err := h.service.Create(c.Request.Context(), req.Account, req.Version)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newSessionResponse(sess, sess.State()))
}

// GetSession 查询表单状态
// @Summary 查询表单状态
// @Tags Save
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response{data=SessionResponse}
// @Router /api/v1/save/sessions/{id} [get]
func (h *SaveHandler) GetSession(c *gin.Context) {
	sess, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newSessionResponse(sess, sess.State()))
}

// SetAmount 输入金额
// @Summary 输入金额
// @Description 原始文本，无法解析时 amount 为空并提示 AmountMustBeSet
// @Tags Save
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param request body request.SetAmountRequest true "输入框文本"
// @Success 200 {object} response.Response{data=SessionResponse}
// @Router /api/v1/save/sessions/{id}/amount [post]
func (h *SaveHandler) SetAmount(c *gin.Context) {
	var req request.SetAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}
	h.dispatch(c, save.SetAmount{FormValue: *req.Value})
}

// SetMaxAmount 填入最大金额
// @Summary 填入最大金额
// @Description 存入时为代币余额，取出时为储蓄余额
// @Tags Save
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response{data=SessionResponse}
// @Router /api/v1/save/sessions/{id}/max [post]
func (h *SaveHandler) SetMaxAmount(c *gin.Context) {
	h.dispatch(c, save.SetMaxAmount{})
}

// Toggle 切换存入/取出
// @Summary 切换存入/取出
// @Tags Save
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response{data=SessionResponse}
// @Router /api/v1/save/sessions/{id}/toggle [post]
func (h *SaveHandler) Toggle(c *gin.Context) {
	h.dispatch(c, save.ToggleTransactionType{})
}

func (h *SaveHandler) dispatch(c *gin.Context, a save.Action) {
	id := c.Param("id")
	st, err := h.service.Dispatch(c.Request.Context(), id, a)
	if err != nil {
		response.Error(c, err)
		return
	}
	sess, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newSessionResponse(sess, st))
}

// Submit 生成交易
// @Summary 生成交易
// @Description 状态合法时生成交易描述并写入发送队列
// @Tags Save
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response{data=service.SubmitResult}
// @Router /api/v1/save/sessions/{id}/submit [post]
func (h *SaveHandler) Submit(c *gin.Context) {
	res, err := h.service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Approve 生成授权交易
// @Summary 授权
// @Description 存入金额超过授权额度 (needs_unlock) 时生成 approve 交易
// @Tags Save
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response{data=service.SubmitResult}
// @Router /api/v1/save/sessions/{id}/approve [post]
func (h *SaveHandler) Approve(c *gin.Context) {
	res, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// History 会话的交易记录
// @Summary 交易记录
// @Tags Save
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response{data=[]service.TransactionView}
// @Router /api/v1/save/sessions/{id}/transactions [get]
func (h *SaveHandler) History(c *gin.Context) {
	views, err := h.service.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

// CloseSession 关闭表单
// @Summary 关闭表单
// @Tags Save
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response
// @Router /api/v1/save/sessions/{id} [delete]
func (h *SaveHandler) CloseSession(c *gin.Context) {
	if err := h.service.Close(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
