package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/reqcheck/echo-reqcheck"
)

// registerRoutes wires the demo endpoints. Each route's binding is recorded
// in the registry so GET /routes can list what gets validated where.
func registerRoutes(e *echo.Echo, registry *reqcheck.Registry, logger zerolog.Logger) {
	pet := e.Group("/pet")

	pet.GET("/findByStatus", echoValidated,
		registry.Validate("GET /pet/findByStatus",
			reqcheck.Query(defaultFindByStatusQuery()),
			reqcheck.WithLogger(logger)))

	pet.GET("/:petId", echoValidated,
		registry.Validate("GET /pet/:petId",
			reqcheck.PathParams(reqcheck.PathTypes{"petId": reqcheck.TInt}),
			reqcheck.WithLogger(logger)))

	pet.POST("", createPet,
		registry.Validate("POST /pet",
			reqcheck.Body(defaultPet()),
			reqcheck.WithLogger(logger)))

	pet.PUT("", echoValidated,
		registry.Validate("PUT /pet",
			reqcheck.Body(defaultPet()),
			reqcheck.WithLogger(logger)))

	pet.POST("/:petId", echoValidated,
		registry.Validate("POST /pet/:petId",
			reqcheck.PathParams(reqcheck.PathTypes{"petId": reqcheck.TInt}),
			reqcheck.Form(new(PetForm)),
			reqcheck.WithLogger(logger)))

	// Typed body handler: the validated Pet is passed as an argument.
	pet.PATCH("", reqcheck.HandleBody(func(c echo.Context, p *Pet) error {
		return c.JSON(http.StatusOK, p)
	}))

	e.GET("/order/:orderId", echoValidated,
		registry.Validate("GET /order/:orderId",
			reqcheck.PathSchema(new(OrderPath)),
			reqcheck.WithLogger(logger)))

	e.GET("/routes", listRoutes(registry))
}

// echoValidated responds with whatever the middleware validated.
func echoValidated(c echo.Context) error {
	vr := reqcheck.MustFromContext(c)
	return c.JSON(http.StatusOK, vr.ToMap())
}

func createPet(c echo.Context) error {
	vr := reqcheck.MustFromContext(c)
	pet, _ := reqcheck.BodyAs[Pet](vr)
	return c.JSON(http.StatusCreated, pet)
}

// listRoutes reports each registered route and the components it validates.
func listRoutes(registry *reqcheck.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		routes := make(map[string][]reqcheck.Component)
		for _, route := range registry.Routes() {
			if b, ok := registry.Binding(route); ok {
				routes[route] = b.Components()
			}
		}
		return c.JSON(http.StatusOK, routes)
	}
}
