package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KaushikNaik2/Schedulix/config"
	"github.com/KaushikNaik2/Schedulix/internal/api/handler"
	"github.com/KaushikNaik2/Schedulix/internal/api/middleware"
	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/pkg/jwt"
	"github.com/KaushikNaik2/Schedulix/pkg/redis"
)

// jsonBodyLimit cap for non-upload request bodies
const jsonBodyLimit = 1 << 20

// Setup builds the gin engine. rdb may be nil.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, "/health"))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(jsonBodyLimit))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	limit := middleware.RateLimit(rdb, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window)
	faculty := middleware.RoleAuth(model.RoleFaculty)
	student := middleware.RoleAuth(model.RoleStudent)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// public auth endpoints
		auth := v1.Group("/auth", limit)
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/forgot/start", h.Auth.ForgotPasswordStart)
			auth.POST("/forgot/reset", h.Auth.ForgotPasswordReset)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetCurrentUser)
				users.PATCH("/me/profile", h.User.UpdateProfile)
				users.POST("/me/profile-picture", h.User.UploadProfilePicture)
				users.DELETE("/me/profile-picture", h.User.RemoveProfilePicture)
				users.GET("/faculty", h.User.ListFaculty)
			}

			timetables := authorized.Group("/timetables")
			{
				timetables.POST("/upload", faculty, h.Timetable.Upload)
				timetables.GET("/me", faculty, h.Timetable.GetMyTimetable)
				timetables.GET("/template", h.Timetable.Template)
				timetables.GET("/faculty/:id", h.Timetable.GetFacultyTimetable)
				timetables.GET("/faculty/:id/export.xlsx", h.Timetable.ExportXLSX)
				timetables.GET("/faculty/:id/export.ics", h.Timetable.ExportICS)
			}

			authorized.GET("/availability", h.Availability.Check)

			meetings := authorized.Group("/meetings")
			{
				meetings.POST("", student, h.Meeting.Create)
				meetings.GET("/mine", student, h.Meeting.ListMine)
				meetings.DELETE("/:id", student, h.Meeting.Delete)
				meetings.GET("/faculty", faculty, h.Meeting.ListForFaculty)
				meetings.PATCH("/:id/decision", faculty, h.Meeting.Decide)
			}

			announcements := authorized.Group("/announcements")
			{
				announcements.GET("", h.Announcement.List)
				announcements.POST("", faculty, h.Announcement.Create)
				announcements.PUT("/:id", faculty, h.Announcement.Update)
				announcements.DELETE("/:id", faculty, h.Announcement.Delete)
			}

			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListUnread)
				notifications.POST("/:id/read", h.Notification.MarkRead)
			}
		}
	}

	return r
}
