package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/opst/smsctl/pkg/mockapi"
)

type users []string

func (u *users) String() string {
	return strings.Join(*u, ",")
}

func (u *users) Set(v string) error {
	if name, pass, ok := strings.Cut(v, ":"); !ok || name == "" || pass == "" {
		return fmt.Errorf("user should be USERNAME:PASSWORD: %s", v)
	}
	*u = append(*u, v)
	return nil
}

func getenv(key string, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("can not read .env: %s", err)
	}

	seeds := users{}
	port := flag.String("port", getenv("SMS_MOCKAPI_PORT", "8000"), "port to listen")
	root := flag.String("root", getenv("SMS_MOCKAPI_ROOT", mockapi.DefaultRoot), "path prefix of API")
	secret := flag.String("secret", getenv("SMS_MOCKAPI_SECRET", ""), "secret to sign tokens. If empty, random one is used")
	ttl := flag.Duration("token-ttl", 30*time.Minute, "lifetime of access tokens")
	loglevel := flag.String("loglevel", getenv("SMS_MOCKAPI_LOGLEVEL", "info"), "log level. debug|info|warn|error|off")
	flag.Var(&seeds, "user", "instructor account as USERNAME:PASSWORD. repeatable")
	flag.Parse()

	if *secret == "" {
		*secret = uuid.NewString()
	}

	st := mockapi.NewStore()
	for _, u := range seeds {
		name, pass, _ := strings.Cut(u, ":")
		if _, err := st.AddUser(name, pass, true); err != nil {
			log.Fatalf("can not add user %s: %s", name, err)
		}
	}

	e := mockapi.New(
		st, mockapi.NewIssuer([]byte(*secret), *ttl),
		mockapi.WithRoot(*root), mockapi.WithLogLevel(*loglevel),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	context.AfterFunc(ctx, func() {
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			log.Printf("error on shutdown: %s", err)
		}
	})

	log.Printf("serving API at http://localhost:%s%s/", *port, strings.TrimSuffix(*root, "/"))
	if err := e.Start(":" + *port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
