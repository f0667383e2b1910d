package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database clients
	SupabaseClient  *supabase.Client
	MongoDBClient   *mongo.Client
	MongoRepo       *models.MongodbRepo
	UserService     *services.UserService
	EventService    *services.EventService
	RsvpService     *services.RsvpService
	FeedbackService *services.FeedbackService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cloudinary *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	supaUrl, supaKey string,
) *Container {
	// Initialize repositories
	supa := models.SupabaseNewRepo(supabaseClient, supaUrl, supaKey)
	mongoRepo := models.MongodbNewRepo(mongoDBClient)

	userService := services.NewUserService(supa, mongoRepo)
	eventService := services.NewEventService(mongoRepo, mongoRepo, cloudinary)
	rsvpService := services.NewRsvpService(mongoRepo)
	feedbackService := services.NewFeedbackService(mongoRepo, mongoRepo)

	return &Container{
		Logger:          logger,
		Cloudinary:      cloudinary,
		SupabaseClient:  supabaseClient,
		MongoDBClient:   mongoDBClient,
		MongoRepo:       mongoRepo,
		UserService:     userService,
		EventService:    eventService,
		RsvpService:     rsvpService,
		FeedbackService: feedbackService,
	}
}
