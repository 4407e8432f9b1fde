package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/webshop/storefront/config"
	"github.com/webshop/storefront/lib/myauth"
	"github.com/webshop/storefront/lib/myhttp"
	"github.com/webshop/storefront/lib/mypublisher"
	"github.com/webshop/storefront/lib/mypubsub"
	"github.com/webshop/storefront/lib/myqueue"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/lib/myuuid"
	"github.com/webshop/storefront/services/address"
	"github.com/webshop/storefront/services/admin"
	"github.com/webshop/storefront/services/cart"
	"github.com/webshop/storefront/services/checkout"
	"github.com/webshop/storefront/services/gateway"
	"github.com/webshop/storefront/services/gatewaymollie"
	"github.com/webshop/storefront/services/gatewaystripe"
	"github.com/webshop/storefront/services/order"
	"github.com/webshop/storefront/services/products"
	"github.com/webshop/storefront/services/shopper"
)

func main() {
	c := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %s", err)
	}

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}
	auth := myauth.New(cfg.JWTSecret, nower)

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()

	router := mux.NewRouter()
	publisher.RegisterEndpoints(c, router)

	productStore, productCleanup, err := mystore.New[products.Product](c)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	defer productCleanup()
	productService := products.NewService(productStore, nower, uuider, auth)
	productService.RegisterEndpoints(c, router)
	err = productService.Seed(c)
	if err != nil {
		log.Fatalf("Error seeding product catalog: %s", err)
	}

	shopperStore, shopperCleanup, err := mystore.New[shopper.Shopper](c)
	if err != nil {
		log.Fatalf("Error creating shopper store: %s", err)
	}
	defer shopperCleanup()
	shopperService := shopper.NewService(shopperStore, auth, nower, uuider)
	shopperService.RegisterEndpoints(c, router)

	cartStore, cartCleanup, err := mystore.New[cart.Cart](c)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}
	defer cartCleanup()
	cartService := cart.NewService(cartStore, pubsub, nower, auth)
	cartService.RegisterEndpoints(c, router)
	err = cartService.Subscribe(c)
	if err != nil {
		log.Fatalf("Error subscribing cart service: %s", err)
	}

	addressStore, addressCleanup, err := mystore.New[address.Address](c)
	if err != nil {
		log.Fatalf("Error creating address store: %s", err)
	}
	defer addressCleanup()
	addressService := address.NewService(addressStore, nower, uuider, auth)
	addressService.RegisterEndpoints(c, router)

	orderStore, orderCleanup, err := mystore.New[order.Order](c)
	if err != nil {
		log.Fatalf("Error creating order store: %s", err)
	}
	defer orderCleanup()
	orderService := order.NewService(orderStore, publisher, cfg.GatewaySigningSecret, nower, uuider, auth)
	orderService.RegisterEndpoints(c, router)
	err = orderService.Subscribe(c)
	if err != nil {
		log.Fatalf("Error subscribing order service: %s", err)
	}

	checkoutStore, checkoutCleanup, err := mystore.New[checkout.CheckoutSession](c)
	if err != nil {
		log.Fatalf("Error creating checkout store: %s", err)
	}
	defer checkoutCleanup()

	// The storefront calls its own cart, address and order endpoints the
	// way it would call remote collaborators.
	baseURL := cfg.CollaboratorBaseURL
	if baseURL == "" {
		baseURL = myhttp.GuessHostnameWithScheme()
	}

	checkoutService := checkout.NewService(checkoutStore,
		checkout.NewRESTCartFetcher(baseURL),
		checkout.NewRESTAddressKeeper(baseURL),
		checkout.NewRESTOrderPlacer(baseURL),
		createGateway(cfg), publisher,
		cfg.DeliveryChargeCents, cfg.DiscountCents,
		nower, uuider, auth)
	checkoutService.RegisterEndpoints(c, router)
	err = checkoutService.Subscribe(c)
	if err != nil {
		log.Fatalf("Error subscribing checkout service: %s", err)
	}

	adminStore, adminCleanup, err := mystore.New[admin.Admin](c)
	if err != nil {
		log.Fatalf("Error creating admin store: %s", err)
	}
	defer adminCleanup()
	adminService := admin.NewService(adminStore, auth, nower, uuider)
	adminService.RegisterEndpoints(c, router)
	err = adminService.Bootstrap(c, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Error bootstrapping admin account: %s", err)
	}

	startWebServerBlocking(router, cfg.Port)
}

func createGateway(cfg config.Config) gateway.Gateway {
	switch cfg.GatewayProvider {
	case "stripe":
		return gatewaystripe.New(gatewaystripe.NewPayer(), cfg.StripeAPIKey)
	case "mollie":
		payer, err := gatewaymollie.NewPayer()
		if err != nil {
			log.Fatalf("Error creating mollie client: %s", err)
		}
		return gatewaymollie.New(payer, cfg.MollieAPIKey)
	}
	return gateway.NewDisabled()
}

func startWebServerBlocking(router *mux.Router, port int) {
	log.Printf("Starting webserver on port %d (try http://localhost:%d)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%d", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %d: %s", port, err)
	}
}
