package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/satriahrh/gerch/adapters/hasher"
	apihttp "github.com/satriahrh/gerch/adapters/http"
	"github.com/satriahrh/gerch/adapters/llm"
	"github.com/satriahrh/gerch/adapters/message_broker"
	"github.com/satriahrh/gerch/adapters/provider"
	"github.com/satriahrh/gerch/adapters/speech"
	"github.com/satriahrh/gerch/adapters/store"
	"github.com/satriahrh/gerch/adapters/tts"
	"github.com/satriahrh/gerch/adapters/websocket"
	"github.com/satriahrh/gerch/domain"
	"github.com/satriahrh/gerch/usecase"
	"github.com/satriahrh/gerch/utils/config"
	"github.com/satriahrh/gerch/utils/log"
)

func main() {
	gotenv.Load()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.With().Fatal("loading config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model := newLlm(cfg)
	pollinations := provider.NewPollinations(cfg.AudioVoice)

	var webSearch domain.WebSearcher = provider.NewDuckDuckGo()
	var imageSearch domain.ImageSearcher
	if cfg.SerpAPIKey != "" {
		serp := provider.NewSerpAPI(cfg.SerpAPIKey)
		webSearch, imageSearch = serp, serp
	}

	registry := usecase.NewRegistry(usecase.DefaultBindings(usecase.Providers{
		Images:   pollinations,
		Crypto:   provider.NewCoinGecko(),
		Papers:   provider.NewArxiv(),
		QA:       provider.NewStackExchange(),
		Weather:  provider.NewOpenMeteo(),
		Creature: provider.NewPokeAPI(),
		Pets:     provider.Pets{Dogs: provider.NewDogCEO(), Cats: provider.NewTheCatAPI()},
		Jokes:    provider.NewChuckNorris(),
		Quotes:   provider.NewProgrammingQuotes(),
		IP:       provider.NewIPInfo(),
	}, cfg.ProviderTimeout)...)

	aggregator := usecase.NewAggregator(usecase.SearchSources{
		Dictionary:   provider.NewFreeDictionary(),
		Web:          webSearch,
		Images:       imageSearch,
		Encyclopedia: provider.NewWikipedia(),
		Overview:     model,
	}, cfg.ProviderTimeout, cfg.LLMTimeout, cfg.SearchLimit)

	voice, audioStore, closeAudio := newVoice(cfg, pollinations)
	defer closeAudio()

	broker := message_broker.NewChannelMessageBroker(message_broker.DefaultBufferSize)
	defer broker.Close()
	go runChatLog(ctx, cfg, broker)

	svc := usecase.NewChatService(usecase.ChatServiceDeps{
		Registry:     registry,
		Aggregator:   aggregator,
		Conversation: usecase.NewConversation(model, cfg.LLMTimeout, cfg.HistoryWindow),
		Composer: usecase.NewComposer(model, voice, usecase.ComposerOptions{
			EnrichTimeout:  cfg.EnrichTimeout,
			AudioTimeout:   cfg.ProviderTimeout,
			EnrichSearch:   cfg.EnrichSearch,
			EnrichHandlers: cfg.EnrichHandlers,
		}),
		Llm:            model,
		LlmTimeout:     cfg.LLMTimeout,
		RequestTimeout: cfg.RequestTimeout,
		Broker:         broker,
	})

	var transcriber domain.Transcriber
	if cfg.AudioBackend == config.AudioGoogle {
		googleSpeech := speech.NewGoogleSpeech(cfg.SpeechLanguage)
		defer googleSpeech.Close()
		transcriber = googleSpeech
	}

	wsServer := websocket.NewServer(svc, cfg.HistoryWindow, cfg.CORSOrigins)
	go wsServer.RunHub(ctx)

	handler := apihttp.NewHandler(svc, transcriber, audioStore)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderXRequestID,
		},
		MaxAge: 86400,
	}))
	e.Use(middleware.BodyLimit("10M"))
	e.Use(apihttp.RequestID, apihttp.Metrics)

	api := e.Group("/api")
	handler.Register(api)
	api.GET("/ws", wsServer.Handler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		log.With().Info("starting server",
			zap.String("port", cfg.Port),
			zap.String("llm", cfg.LLMProvider),
			zap.String("audio", cfg.AudioBackend),
			zap.Strings("bindings", registry.Names()))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.With().Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.With().Error("shutting down", zap.Error(err))
	}
}

func newLlm(cfg config.Config) domain.Llm {
	switch cfg.LLMProvider {
	case config.LLMGemini:
		return llm.NewGeminiClient(cfg.GeminiModel)
	case config.LLMOpenAI:
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	default:
		return llm.NewPollinationsClient("", cfg.PollinationsModel, cfg.LLMTimeout)
	}
}

// newVoice returns the configured voice, the store backing /api/audio (nil
// unless clips are synthesized locally) and a cleanup func.
func newVoice(cfg config.Config, pollinations *provider.Pollinations) (domain.Voice, domain.AudioStore, func()) {
	switch cfg.AudioBackend {
	case config.AudioPollinations:
		return tts.NewURLVoice(pollinations), nil, func() {}
	case config.AudioGoogle:
		audioStore, err := store.NewRedisAudioStore(store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.AudioTTL,
		})
		if err != nil {
			log.With().Fatal("connecting audio store", zap.Error(err))
		}
		googleTTS := tts.NewGoogleTTS(cfg.TTSLanguage)
		voice := tts.NewStoredVoice(googleTTS, audioStore, hasher.New(), cfg.PublicBaseURL)
		return voice, audioStore, func() {
			googleTTS.Close()
			audioStore.Close()
		}
	default:
		return nil, nil, func() {}
	}
}

// runChatLog persists chat events to Mongo when MONGO_URL is set, otherwise
// to the structured log.
func runChatLog(ctx context.Context, cfg config.Config, broker domain.MessageBroker) {
	var writer domain.ChatLogWriter = store.NewLogChatLog()
	if cfg.MongoURL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		mongoLog, err := store.NewMongoChatLog(connectCtx, cfg.MongoURL, cfg.DBName)
		cancel()
		if err != nil {
			log.With().Error("mongo unavailable, chat log falls back to stdout", zap.Error(err))
		} else {
			defer mongoLog.Close()
			writer = mongoLog
		}
	}

	if err := store.RunChatLog(ctx, broker, writer); err != nil {
		log.With().Error("chat log stopped", zap.Error(err))
	}
}
