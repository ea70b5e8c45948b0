package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vit-healthcare/internal/appointment"
	"vit-healthcare/internal/embedding"
	"vit-healthcare/internal/knowledge"
	"vit-healthcare/internal/otp"
	"vit-healthcare/internal/platform/mail"
	"vit-healthcare/internal/prescription"
	"vit-healthcare/internal/report"
	"vit-healthcare/internal/triage"
)

func main() {
	// 1. Knowledge base
	otcPath := os.Getenv("OTC_FILE_PATH")
	if otcPath == "" {
		otcPath = "data/otc_drugs.txt"
	}

	records, skipped, err := knowledge.Load(otcPath)
	if err != nil {
		log.Fatalf("Could not read OTC file %s: %v", otcPath, err)
	}
	if len(records) == 0 {
		log.Printf("Warning: no OTC entries loaded from %s. Matching will always fail.", otcPath)
	} else {
		log.Printf("Loaded %d OTC entries.", len(records))
	}
	for _, s := range skipped {
		log.Printf("Skipped OTC block at line %d: %s", s.Line, s.Reason)
	}

	// 2. Clients
	embedClient := embedding.NewClient(embedding.Config{
		BaseURL: os.Getenv("OLLAMA_URL"),
		Model:   os.Getenv("EMBED_MODEL"),
	})

	smtpPort := 587
	if v, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && v > 0 {
		smtpPort = v
	}
	smtpHost := os.Getenv("SMTP_SERVER")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	mailClient := mail.NewClient(os.Getenv("SMTP_EMAIL"), os.Getenv("SMTP_PASSWORD"), smtpHost, smtpPort)
	if !mailClient.Enabled() {
		log.Println("Warning: SMTP_EMAIL is not set. Prescription and OTP emails will not be sent.")
	}

	// 3. Startup probe + index build. On probe failure the service runs in
	// degraded mode: risk scoring still works, matching reports unavailable.
	ctx := context.Background()
	if embedClient.Ready(ctx) {
		log.Println("Generating embeddings for OTC entries...")
	} else {
		log.Println("Warning: embedding service not reachable after retries. Running in degraded mode.")
	}
	index := triage.BuildIndex(ctx, records, embedClient)

	// 4. Services
	pipeline := triage.NewPipeline(index, embedClient)
	reportSvc := report.NewService(mailClient)
	prescriptionSvc := prescription.NewService(pipeline, reportSvc)
	prescriptionHandler := prescription.NewHandler(prescriptionSvc)

	otpStore := otp.NewStore(otp.DefaultTTL)
	otpHandler := otp.NewHandler(otpStore, mailClient)

	appointmentSvc := appointment.NewService(mailClient)
	appointmentHandler := appointment.NewHandler(appointmentSvc)

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		prescription.RegisterRoutes(r, prescriptionHandler)
		otp.RegisterRoutes(r, otpHandler)
		appointment.RegisterRoutes(r, appointmentHandler)
	})

	srv := &http.Server{
		Addr:              ":" + port(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("Server starting on port %s...\n", port())
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
