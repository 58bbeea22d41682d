package bootstrap

import (
	"context"
	"log"

	"telemed-be/internal/config"
	"telemed-be/internal/controller"
	"telemed-be/internal/handler"
	"telemed-be/internal/pkg/logger"
	"telemed-be/internal/pkg/mailer"
	"telemed-be/internal/repository/implementation"
	"telemed-be/internal/repository/memory"
	"telemed-be/internal/service"
	"telemed-be/internal/websocket"
	"telemed-be/pkg/diagnosis"
	"telemed-be/pkg/llm/factory"
	"telemed-be/pkg/speech"

	pktNats "telemed-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController             controller.IAuthController
	PatientController          controller.IPatientController
	DoctorController           controller.IDoctorController
	StructureController        controller.IStructureController
	AppointmentController      controller.IAppointmentController
	TeleconsultationController controller.ITeleconsultationController
	KnowledgeController        controller.IKnowledgeController
	AssistantController        controller.IAssistantController

	// Background services (exposed for main.go to run)
	SummaryConsumer service.ISummaryConsumerService

	// WebSockets & notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Repositories
	userRepo := implementation.NewUserRepository(db)
	patientRepo := implementation.NewPatientRepository(db)
	doctorRepo := implementation.NewDoctorRepository(db)
	structureRepo := implementation.NewStructureRepository(db)
	appointmentRepo := implementation.NewAppointmentRepository(db)
	teleconsultationRepo := implementation.NewTeleconsultationRepository(db)
	notificationRepo := implementation.NewNotificationRepository(db)
	diseaseRepo := implementation.NewDiseaseRepository(db)
	symptomRepo := implementation.NewSymptomRepository(db)
	conversationRepo := implementation.NewConversationRepository(db)
	sessionRepo := memory.NewSessionRepository()

	// Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// In-process queue for deferred summary generation
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Mailer
	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// Speech pipeline
	transcriber := speech.NewWhisperClient(cfg.Speech.STTBaseURL)
	synthesizer := speech.NewPiperClient(cfg.Speech.TTSBaseURL, cfg.Speech.TTSVoice)
	converter := speech.NewFfmpegConverter(cfg.Speech.FfmpegPath)
	audioStore := service.NewAudioStore(synthesizer, cfg.Speech, sysLogger)

	// LLM provider and diagnosis pipeline
	llmProvider, err := factory.NewProvider(cfg.Ai)
	if err != nil {
		log.Fatalf("Failed to initialize LLM provider: %v", err)
	}
	analyzer := diagnosis.NewAnalyzer(llmProvider, sysLogger)
	replies := diagnosis.NewGenerator(llmProvider, sysLogger)
	contextProvider := service.NewContextService(rdb, conversationRepo, cfg.Assistant.ContextWindowSize, sysLogger)
	engine := diagnosis.NewEngine(
		analyzer,
		replies,
		diseaseRepo,
		symptomRepo,
		conversationRepo,
		contextProvider,
		audioStore.Attach,
		cfg.Assistant,
		sysLogger,
	)

	// Services
	authService := service.NewAuthService(userRepo, cfg.Auth, natsPub, sysLogger)
	patientService := service.NewPatientService(patientRepo, replies)
	doctorService := service.NewDoctorService(doctorRepo, patientRepo, replies)
	structureService := service.NewStructureService(structureRepo, replies)
	knowledgeService := service.NewKnowledgeService(diseaseRepo, symptomRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		patientRepo,
		userRepo,
		notificationRepo,
		wsHub,
		emailService,
		natsPub,
		sysLogger,
	)
	teleconsultationService := service.NewTeleconsultationService(
		teleconsultationRepo,
		patientRepo,
		pubSub,
		natsPub,
		sysLogger,
	)
	summaryConsumer := service.NewSummaryConsumerService(
		pubSub,
		teleconsultationRepo,
		patientRepo,
		userRepo,
		replies,
		emailService,
	)
	assistantService := service.NewAssistantService(
		engine,
		transcriber,
		converter,
		audioStore,
		conversationRepo,
		natsPub,
		sysLogger,
	)

	// Event fan-out worker
	eventConsumer := service.NewEventConsumerService(notificationRepo, userRepo, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go eventConsumer.Start()
	}

	// Voice session manager
	voiceLogger := logger.NewIsolatedLogger("logs/voice.log")
	voiceManager := websocket.NewVoiceManager(sessionRepo, assistantService, cfg.Assistant, voiceLogger)

	notifHandler := handler.NewNotificationHandler(notificationService, natsPub, wsHub, wsLogger)

	return &Container{
		AuthController:             controller.NewAuthController(authService),
		PatientController:          controller.NewPatientController(patientService),
		DoctorController:           controller.NewDoctorController(doctorService),
		StructureController:        controller.NewStructureController(structureService),
		AppointmentController:      controller.NewAppointmentController(appointmentService),
		TeleconsultationController: controller.NewTeleconsultationController(teleconsultationService),
		KnowledgeController:        controller.NewKnowledgeController(knowledgeService),
		AssistantController:        controller.NewAssistantController(assistantService, voiceManager, voiceLogger),

		SummaryConsumer: summaryConsumer,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
