package config

import (
	"log/slog"
	"os"
)

// JwtKey az admin munkamenet-tokenek aláíró kulcsa.
var JwtKey []byte

// GoogleClientID a Google bejelentkezés ellenőrzéséhez használt kliensazonosító.
var GoogleClientID string

func InitAuth() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("Kritikus hiba: a JWT_SECRET környezeti változó nincs beállítva.")
		os.Exit(1)
	}
	JwtKey = []byte(secret)

	GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	if GoogleClientID == "" {
		slog.Warn("A GOOGLE_CLIENT_ID nincs beállítva, a Google bejelentkezés nem fog működni.")
	}
}
