package initializers

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

var (
	FirebaseApp  *firebase.App
	FirebaseAuth *auth.Client
	RealtimeDB   *db.Client
)

// InitFirebase sets up the Firebase app and the clients the configuration asks for.
// Failures are logged and leave the corresponding client nil.
func InitFirebase() {
	ctx := context.Background()

	var conf *firebase.Config
	if Config.FirebaseDatabaseURL != "" {
		conf = &firebase.Config{DatabaseURL: Config.FirebaseDatabaseURL}
	}

	var err error
	if Config.FirebaseServiceAccountPath != "" {
		opt := option.WithCredentialsFile(Config.FirebaseServiceAccountPath)
		FirebaseApp, err = firebase.NewApp(ctx, conf, opt)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize Firebase app with service account")
			return
		}
		log.Info().Msg("Firebase initialized with service account file")
	} else {
		FirebaseApp, err = firebase.NewApp(ctx, conf)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize Firebase app with ADC")
			return
		}
		log.Info().Msg("Firebase initialized with Application Default Credentials")
	}

	if Config.StoreBackend == StoreFirebase {
		RealtimeDB, err = FirebaseApp.Database(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get Firebase realtime database client")
		}
	}

	if Config.FirebaseAuthEnabled {
		FirebaseAuth, err = FirebaseApp.Auth(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to get Firebase auth client")
		}
	}
}
