package main

import (
	"net/http"
	"os"

	"github.com/fadco/partner-recap/internal/activite"
	"github.com/fadco/partner-recap/internal/auth"
	"github.com/fadco/partner-recap/internal/dashboard"
	"github.com/fadco/partner-recap/internal/facture"
	"github.com/fadco/partner-recap/internal/importation"
	"github.com/fadco/partner-recap/internal/paiement"
	"github.com/fadco/partner-recap/internal/partenaire"
	"github.com/fadco/partner-recap/internal/recap"
	"github.com/fadco/partner-recap/internal/scheduler"
	"github.com/fadco/partner-recap/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à la base impossible")
	}

	if err := database.AutoMigrate(
		&partenaire.Partenaire{},
		&activite.Activite{},
		&recap.RecapMensuel{},
		&facture.FacturePartenaire{},
		&paiement.PaiementCommission{},
	); err != nil {
		log.Fatal().Err(err).Msg("échec de l'AutoMigrate")
	}

	recapsDir := env("RECAPS_DIR", "recaps")
	facturesDir := env("FACTURES_DIR", "factures")

	// Services
	importService := importation.NewService(database, log)
	recapService := recap.NewService(database, recapsDir, log)

	// Handlers
	partenaireHandler := partenaire.NewHandler(database)
	dashboardHandler := dashboard.NewHandler(activite.NewRepository(database))
	importHandler := importation.NewHandler(importService)
	recapHandler := recap.NewHandler(recapService)
	factureHandler := facture.NewHandler(database, facturesDir)
	paiementHandler := paiement.NewHandler(paiement.NewRepository(database))

	// Router
	r := mux.NewRouter()

	// Connexion (hors authentification)
	r.HandleFunc("/login", partenaireHandler.Login).Methods("POST")

	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAuthentification)

	// Partenaires
	api.HandleFunc("/partenaires", partenaireHandler.ListerPartenaires).Methods("GET")
	api.HandleFunc("/partenaires/{id}", partenaireHandler.TrouverParID).Methods("GET")
	api.Handle("/partenaires/{id}/reset-password", auth.RequireAdmin(http.HandlerFunc(partenaireHandler.ReinitialiserMotDePasse))).Methods("POST")
	api.HandleFunc("/password", partenaireHandler.ChangerMotDePasse).Methods("PUT")

	// Tableau de bord
	api.HandleFunc("/dashboard", dashboardHandler.Dashboard).Methods("GET")

	// Récapitulatifs
	api.HandleFunc("/recaps", recapHandler.MesRecaps).Methods("GET")
	api.HandleFunc("/recaps/{id}", recapHandler.VoirRecap).Methods("GET")
	api.HandleFunc("/recaps/{id}/pdf", recapHandler.TelechargerPDF).Methods("GET")
	api.HandleFunc("/generate-pdf/{year}/{month}", recapHandler.GenererPDF).Methods("POST")

	// Factures
	api.HandleFunc("/factures", factureHandler.MesFactures).Methods("GET")
	api.HandleFunc("/recaps/{id}/facture", factureHandler.Uploader).Methods("POST")
	api.HandleFunc("/facture", factureHandler.UploaderDerniere).Methods("POST")

	// Paiements
	api.HandleFunc("/paiements", paiementHandler.ListerPaiements).Methods("GET")
	api.Handle("/paiements/{id}", auth.RequireAdmin(http.HandlerFunc(paiementHandler.MettreAJour))).Methods("PUT")

	// Import Excel (admin uniquement)
	api.Handle("/import", auth.RequireAdmin(http.HandlerFunc(importHandler.Importer))).Methods("POST")

	// Batch mensuel : récaps du mois précédent, le 1er à 00h10
	sched := scheduler.New(log)
	if err := sched.AddJob(scheduler.PlanningRecapMensuel, &scheduler.RecapMensuelJob{Service: recapService}); err != nil {
		log.Fatal().Err(err).Msg("enregistrement du job mensuel impossible")
	}
	sched.Start()
	defer sched.Stop()

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	addr := env("HTTP_ADDR", ":8080")
	log.Info().Str("addr", addr).Msg("serveur démarré")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("serveur arrêté")
	}
}
