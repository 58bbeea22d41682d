package controller

import (
	"io"
	"os"

	"telemed-be/internal/dto"
	"telemed-be/internal/pkg/apperror"
	"telemed-be/internal/pkg/logger"
	"telemed-be/internal/pkg/serverutils"
	"telemed-be/internal/service"
	internalWS "telemed-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Feedback(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Realtime(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	voiceManager     *internalWS.VoiceManager
	logger           logger.ILogger
}

func NewAssistantController(assistantService service.IAssistantService, voiceManager *internalWS.VoiceManager, log logger.ILogger) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		voiceManager:     voiceManager,
		logger:           log,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("/chat", serverutils.JwtMiddleware, c.Chat)
	h.Post("/feedback", serverutils.JwtMiddleware, c.Feedback)
	h.Get("/history/:session_id", serverutils.JwtMiddleware, c.History)

	// Browsers cannot set headers on websocket handshakes, the token
	// travels as a query parameter instead.
	h.Get("/realtime", c.Realtime)
}

// Chat accepts a JSON body or a multipart form. The form variant may
// carry an "audio_file" part instead of, or alongside, the text message.
func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if req.SessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "session_id is required"))
	}

	process := &dto.ProcessRequest{
		SessionId: req.SessionId,
		Message:   req.Message,
	}

	if file, err := ctx.FormFile("audio_file"); err == nil {
		src, err := file.Open()
		if err != nil {
			return apperror.Internal("failed to open audio upload", err)
		}
		defer src.Close()

		audio, err := io.ReadAll(src)
		if err != nil {
			return apperror.Internal("failed to read audio upload", err)
		}
		process.Audio = audio
	}

	res, err := c.assistantService.Process(ctx.Context(), process)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process message", res))
}

func (c *assistantController) Feedback(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.assistantService.AnnotateFeedback(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success record feedback", nil))
}

func (c *assistantController) History(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("session_id")

	res, err := c.assistantService.GetHistory(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show history", res))
}

// Realtime upgrades the connection and hands it to the voice manager.
func (c *assistantController) Realtime(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.logger.Warn("AssistantController", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token claims"))
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Token missing user_id"))
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			c.voiceManager.Handle(conn, userID)
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}
