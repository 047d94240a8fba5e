package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version of the verifier, shown in the UI footer and /api/status.
const Version = "2.0"

var (
	addr         string
	apiKey       string
	provider     string
	settingsPath string
	debugMode    bool
)

var debugEnabled bool

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

var rootCmd = &cobra.Command{
	Use:   "news-verifier",
	Short: "AI-powered news claim verification service",
	Long:  `Serves a single-page app that classifies news claims as true, false, partially true, or unverified using a generative AI model, with best-effort article extraction from URLs.`,
	Run: func(cmd *cobra.Command, args []string) {
		// .env is optional; environment variables win either way.
		if err := godotenv.Load(); err == nil {
			debugLog("loaded .env file")
		}

		if debugMode {
			SetDebugMode(true)
		}

		var settings *Settings
		var err error
		if settingsPath != "" {
			settings, err = loadSettingsRequired(settingsPath)
		} else {
			if err := ensureConfigExists(); err != nil {
				log.Printf("Warning: could not write default config: %v", err)
			}
			settings, err = loadSettings(getConfigPath("settings.yaml"))
		}
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}

		if provider != "" {
			settings.Engine.Provider = provider
		}
		if addr != "" {
			settings.Server.Addr = addr
		}

		key := apiKey
		if key == "" {
			key = apiKeyFromEnv(settings.Engine.Provider)
		}

		engine := NewEngine(settings, key)
		if !engine.Ready() {
			log.Printf("Warning: AI engine not ready (%v); verifications will fail until a key and reachable model are configured", engine.Err())
		}

		sources := settings.TrustedSources()
		verifier := NewVerifier(engine, sources, settings.EngineTimeout())
		extractor := NewExtractor(settings.ExtractorTimeout(), settings.Extractor.MaxChars)
		server := NewServer(verifier, extractor, engine, sources)

		log.Printf("News verifier v%s listening on %s", Version, settings.Server.Addr)
		if err := server.Run(settings.Server.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	},
}

// apiKeyFromEnv picks the credential matching the configured provider.
func apiKeyFromEnv(provider string) string {
	switch provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides settings)")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "Model API key (defaults to OPENAI_API_KEY or ANTHROPIC_API_KEY)")
	rootCmd.Flags().StringVar(&provider, "provider", "", "Model provider: openai or anthropic (overrides settings)")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to a settings.yaml (must exist if given)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
