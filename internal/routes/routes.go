package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucCalendar "github.com/BruksfildServices01/barber-booking/internal/usecase/calendar"
)

// Stores groups the persistence ports. The memory store and the gorm
// repositories both satisfy them.
type Stores struct {
	Calendar  domain.CalendarRepository
	Ledger    domain.Ledger
	Ratings   domain.RatingRepository
	Catalog   catalog.Store
	EventLogs handlers.EventLogReader
}

type Deps struct {
	Config  *config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Stores  Stores
	Events  events.Publisher
	Clock   domain.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	log := logger.OrNop(d.Log)
	loc := timezone.Location(cfg.ShopTimezone)

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(log))
	r.Use(d.Metrics.Middleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	services := catalog.NewReader(d.Stores.Catalog)

	policy := ucBooking.Policy{
		Location:         loc,
		Step:             cfg.SlotStep(),
		MinNotice:        cfg.MinNotice(),
		MaxAdvanceDays:   cfg.MaxAdvanceDays,
		AdmissionRetries: cfg.AdmissionRetries,
	}

	// ======================================================
	// 🧠 USE CASES - BOOKINGS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(
		d.Stores.Calendar, d.Stores.Ledger, services, d.Clock, policy,
	)
	createBookingUC := ucBooking.NewCreateBooking(
		d.Stores.Calendar, d.Stores.Ledger, services, d.Clock, policy,
		d.Events, d.Metrics, log,
	)
	changeStatusUC := ucBooking.NewChangeStatus(d.Stores.Ledger, d.Clock, d.Events, d.Metrics, log)
	attachRatingUC := ucBooking.NewAttachRating(d.Stores.Ledger, d.Stores.Ratings, d.Events, log)
	getBookingUC := ucBooking.NewGetBooking(d.Stores.Ledger)
	listByDateUC := ucBooking.NewListBookingsByDate(d.Stores.Ledger, loc)
	listByMonthUC := ucBooking.NewListBookingsByMonth(d.Stores.Ledger, loc)
	listMineUC := ucBooking.NewListCustomerBookings(d.Stores.Ledger)

	// ======================================================
	// 🧠 USE CASES - CALENDAR
	// ======================================================
	getHoursUC := ucCalendar.NewGetWorkingHours(d.Stores.Calendar)
	setHoursUC := ucCalendar.NewSetWorkingHours(d.Stores.Calendar, log)
	addBlockedUC := ucCalendar.NewAddBlockedTime(d.Stores.Calendar, log)
	listBlockedUC := ucCalendar.NewListBlockedTimes(d.Stores.Calendar)
	deleteBlockedUC := ucCalendar.NewDeleteBlockedTime(d.Stores.Calendar, log)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(availabilityUC, services, cfg.DefaultBarberID, loc)
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		changeStatusUC,
		attachRatingUC,
		getBookingUC,
		listMineUC,
		cfg.DefaultBarberID,
		loc,
	)
	adminBookingHandler := handlers.NewAdminBookingHandler(listByDateUC, listByMonthUC, getBookingUC, changeStatusUC, loc)
	workingHoursHandler := handlers.NewWorkingHoursHandler(getHoursUC, setHoursUC)
	blockedTimeHandler := handlers.NewBlockedTimeHandler(addBlockedUC, listBlockedUC, deleteBlockedUC)
	eventLogsHandler := handlers.NewEventLogsHandler(d.Stores.EventLogs, loc)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst, log)

	// ======================================================
	// 🩺 INFRA ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
		}

		// ------------------------------
		// 🔐 CLIENTE
		// ------------------------------
		bookings := api.Group("/bookings")
		bookings.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			bookings.POST("", limiter.Middleware(), bookingHandler.Create)
			bookings.GET("", bookingHandler.List)
			bookings.GET("/:id", bookingHandler.Get)
			bookings.POST("/:id/payment-confirmation", limiter.Middleware(), bookingHandler.ConfirmPayment)
			bookings.POST("/:id/cancel", limiter.Middleware(), bookingHandler.Cancel)
			bookings.POST("/:id/rating", limiter.Middleware(), bookingHandler.Rate)
		}

		// ------------------------------
		// 🔐 BARBEIRO
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireAdmin(cfg.DefaultBarberID))
		{
			admin.GET("/bookings", adminBookingHandler.ListByDate)
			admin.GET("/bookings/month", adminBookingHandler.ListByMonth)
			admin.GET("/bookings/:id", adminBookingHandler.Get)
			admin.PATCH("/bookings/:id/status", adminBookingHandler.ChangeStatus)

			admin.GET("/working-hours", workingHoursHandler.Get)
			admin.PUT("/working-hours", workingHoursHandler.Update)

			admin.GET("/blocked-times", blockedTimeHandler.List)
			admin.POST("/blocked-times", blockedTimeHandler.Create)
			admin.DELETE("/blocked-times/:id", blockedTimeHandler.Delete)

			admin.GET("/event-logs", eventLogsHandler.List)
		}
	}
}
