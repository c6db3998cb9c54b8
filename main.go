package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/rocketshoes/lib/myhttpclient"
	"github.com/MarcGrol/rocketshoes/lib/mykvstore"
	"github.com/MarcGrol/rocketshoes/lib/mytime"
	"github.com/MarcGrol/rocketshoes/lib/myuuid"
	"github.com/MarcGrol/rocketshoes/services/cart"
	"github.com/MarcGrol/rocketshoes/services/catalog"
	"github.com/MarcGrol/rocketshoes/services/catalog/catalogclient"
	"github.com/MarcGrol/rocketshoes/services/warmup"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()
	port := getEnv("PORT", "8080")

	catalogURL := os.Getenv("CATALOG_URL")
	if catalogURL == "" {
		fake, err := catalog.NewSeededFake(c)
		if err != nil {
			log.Fatalf("Error creating fake catalog: %s", err)
		}
		catalog.NewService(fake).RegisterEndpoints(c, router.PathPrefix("/catalog").Subrouter())
		catalogURL = fmt.Sprintf("http://localhost:%s/catalog", port)
	}

	idleTimeout, err := time.ParseDuration(getEnv("CART_IDLE_TIMEOUT", cart.DefaultIdleTimeout.String()))
	if err != nil {
		log.Fatalf("Error parsing CART_IDLE_TIMEOUT: %s", err)
	}

	storage, cleanup, err := mykvstore.New(c)
	if err != nil {
		log.Fatalf("Error creating cart storage: %s", err)
	}
	defer cleanup()

	catalogClient := catalogclient.New(catalogURL, myhttpclient.New())

	cartService := cart.NewService(storage, catalogClient, mytime.RealNower{}, myuuid.RealUUIDer{}, idleTimeout)
	cartService.RegisterEndpoints(c, router)

	warmup.NewService(storage, catalogClient).RegisterEndpoints(c, router)

	startWebServerBlocking(router, port)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func startWebServerBlocking(router *mux.Router, port string) {
	log.Printf("Starting webserver on port %s (try http://localhost:%s/api/cart)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
