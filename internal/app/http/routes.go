package httpEngine

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listloop-server/configs"
	"listloop-server/internal/ai/planner"
	"listloop-server/internal/controllers"
	"listloop-server/internal/logics"
	"listloop-server/internal/middlewares"
	"listloop-server/internal/realtime"
	"listloop-server/internal/repositories"
	"listloop-server/internal/utils"
)

// RegisterRoutes wires every service and controller and registers the
// full route table.
func RegisterRoutes(e *echo.Echo, broker realtime.Broker, p *planner.Planner) {
	// Health check endpoint, no JWT middleware.
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, from ListLoop Server!")
	})

	db := repositories.DBS.Postgres
	logger := configs.Logger
	cursorManager := utils.NewCursorManager(configs.Configs.Secrets.CursorSecret)

	accessService := logics.NewAccessService(db)
	listService := logics.NewListService(db, accessService, cursorManager, logger)
	itemService := logics.NewItemService(db, accessService, listService, broker, logger)
	commentService := logics.NewCommentService(db, accessService, broker, logger)
	invitationService := logics.NewInvitationService(db, accessService, broker, logger)
	messageService := logics.NewMessageService(db, accessService, broker, logger)
	userService := logics.NewUserService(db)
	plannerService := logics.NewPlannerService(db, p, accessService, listService, itemService, logger)

	listController := controllers.NewListController(listService)
	itemController := controllers.NewItemController(itemService)
	commentController := controllers.NewCommentController(commentService)
	invitationController := controllers.NewInvitationController(invitationService)
	messageController := controllers.NewMessageController(messageService)
	aiController := controllers.NewAIController(plannerService)
	realtimeController := controllers.NewRealtimeController(accessService, configs.Configs.Secrets.ChannelSecret)
	userController := controllers.NewUserController(userService)

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middlewares.JWTMiddleware(configs.Configs.Secrets.JwtPublicKey))

	// List endpoints
	apiV1.POST("/lists", listController.CreateList)
	apiV1.GET("/lists", listController.GetRecentLists)
	apiV1.GET("/lists/:listId", listController.GetList)
	apiV1.DELETE("/lists/:listId", listController.DeleteList)

	// Item endpoints
	apiV1.POST("/lists/:listId/append", itemController.AppendItem)
	apiV1.PATCH("/lists/:listId/:itemType/:itemId", itemController.PatchItem)
	apiV1.DELETE("/lists/:listId/:itemType/:itemId", itemController.DeleteItem)

	// Comment endpoints
	apiV1.GET("/lists/:listId/:itemType/:itemId/comments", commentController.ListComments)
	apiV1.POST("/lists/:listId/:itemType/:itemId/comments", commentController.CreateComment)

	// Collaboration endpoints
	apiV1.POST("/lists/:listId/invite", invitationController.Invite)
	apiV1.GET("/lists/:listId/collaborators", invitationController.GetCollaborators)
	apiV1.GET("/invitations", invitationController.GetInvitations)
	apiV1.GET("/invitations/count", invitationController.CountInvitations)
	apiV1.POST("/invitations/:invitationId/accept", invitationController.Accept)
	apiV1.POST("/invitations/:invitationId/decline", invitationController.Decline)

	// Direct message endpoints
	apiV1.POST("/lists/:listId/messages", messageController.SendMessage)
	apiV1.GET("/lists/:listId/messages", messageController.GetThread)

	// AI endpoints
	apiV1.POST("/ai/generate", aiController.GenerateList)
	apiV1.POST("/ai/command", aiController.ExecuteCommand)

	// Realtime channel authorization
	apiV1.POST("/realtime/auth", realtimeController.Authorize)

	// User lookup
	apiV1.GET("/users/search", userController.SearchUsers)
}
