package qa

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zhouzirui/simplechat/internal/service/ai"
	"github.com/zhouzirui/simplechat/pkg/utils"
)

// EmptyQuestionWarning 是空问题时展示给用户的提示。
const EmptyQuestionWarning = "Please enter a question."

// Answerer 回答单个问题，不保留历史。
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Handler 问答表单的HTTP处理器
type Handler struct {
	answerer Answerer
}

// New 创建问答处理器
func New(answerer Answerer) *Handler {
	return &Handler{answerer: answerer}
}

// RegisterRoutes 注册表单与 JSON 路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleForm)
	r.Post("/", h.handleSubmit)
	r.Post("/api/ask", h.handleAsk)
}

// Answer 是 JSON 与 WebSocket 接口返回的回答。
type Answer struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ask 执行一次独立的问答调用
func (h *Handler) ask(ctx context.Context, question string) (Answer, error) {
	text, err := h.answerer.Answer(ctx, question)
	if err != nil {
		return Answer{}, err
	}
	return Answer{ID: uuid.NewString(), Question: question, Answer: text}, nil
}

// handleForm 渲染空表单
func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, pageData{})
}

// handleSubmit 处理表单提交
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, pageData{Error: "invalid form submission"})
		return
	}

	question := r.PostForm.Get("question")
	data := pageData{Question: question}

	answer, err := h.ask(r.Context(), question)
	switch {
	case errors.Is(err, ai.ErrEmptyQuestion):
		data.Warning = EmptyQuestionWarning
		renderPage(w, http.StatusOK, data)
	case err != nil:
		log.Printf("[qa] form answer failed: %v", err)
		data.Error = "The model could not answer right now. Please try again."
		renderPage(w, http.StatusBadGateway, data)
	default:
		data.Answer = answer.Answer
		data.Answered = true
		renderPage(w, http.StatusOK, data)
	}
}

// handleAsk 处理 JSON 问答请求
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string `json:"question"`
	}

	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.ask(r.Context(), payload.Question)
	if errors.Is(err, ai.ErrEmptyQuestion) {
		utils.RespondError(w, http.StatusBadRequest, EmptyQuestionWarning)
		return
	}
	if err != nil {
		log.Printf("[qa] api answer failed: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "completion failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, answer)
}
