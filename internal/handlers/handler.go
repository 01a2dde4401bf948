package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/eduroese/To-Do-App/internal/live"
	"github.com/eduroese/To-Do-App/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type Config struct {
	Service        *services.Service
	Stores         services.StoreProvider
	Hub            *live.Hub
	Logger         *log.Logger
	AllowedOrigins []string
}

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes = 1 << 20

type Handler struct {
	svc     *services.Service
	stores  services.StoreProvider
	hub     *live.Hub
	logger  *log.Logger
	origins []string
}

func New(cfg Config) *Handler {
	return &Handler{
		svc:     cfg.Service,
		stores:  cfg.Stores,
		hub:     cfg.Hub,
		logger:  cfg.Logger,
		origins: cfg.AllowedOrigins,
	}
}

// requestType reads the "type" field of the body and checks it against allowed.
// The body stays cached on the context so it can be bound again.
func (h *Handler) requestType(ctx *gin.Context, allowed ...RequestType) (RequestType, bool) {
	var env envelope

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, MaxBodyBytes)

	if err := ctx.ShouldBindBodyWith(&env, binding.JSON); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("request body too large", "method", ctx.Request.Method, "limit", tooLarge.Limit)
			ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return "", false
		}

		h.logger.Warn("failed to bind JSON", "method", ctx.Request.Method, "err", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return "", false
	}

	t, err := ParseRequestType(env.Type, allowed...)
	if err != nil {
		h.logger.Warn("rejected request", "method", ctx.Request.Method, "type", env.Type, "err", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request type"})
		return "", false
	}

	return t, true
}

// bind decodes the cached body into req and runs its binding validations.
func (h *Handler) bind(ctx *gin.Context, t RequestType, req interface{}) bool {
	if err := ctx.ShouldBindBodyWith(req, binding.JSON); err != nil {
		h.logger.Warn("failed to bind JSON", "type", t, "err", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}
	return true
}

// fail logs err with keyvals and writes the matching error response.
func (h *Handler) fail(ctx *gin.Context, err error, keyvals ...interface{}) {
	kind := services.KindOf(err)
	keyvals = append(keyvals, "kind", kind, "err", err)

	if kind == services.KindInternal {
		h.logger.Error(services.Message(err), keyvals...)
	} else {
		h.logger.Warn(services.Message(err), keyvals...)
	}

	ctx.JSON(kind.Status(), gin.H{"error": services.Message(err)})
}

func (h *Handler) refresh(user string) {
	if h.hub != nil {
		h.hub.BroadcastRefresh(user)
	}
}
