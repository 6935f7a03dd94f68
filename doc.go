// Package reqcheck adds request validation to Echo route handlers.
//
// Expected request shapes are declared as tagged Go structs and bound to a
// route's components (body, query, path, form) at registration time. Before
// the handler runs, raw request data is extracted, coerced to the declared
// field types, and checked against `validate` struct tags
// (go-playground/validator). Failures short-circuit to an HTTP 400 response;
// successes attach the typed result to the request context.
//
// # Basic Usage
//
// Bind schemas with the Validate middleware and read the result with
// FromContext:
//
//	type CreatePet struct {
//	    Name string  `json:"name" validate:"required"`
//	    Age  int     `json:"age" validate:"gte=0"`
//	    Tag  *string `json:"tag"`
//	}
//
//	e := echo.New()
//	reqcheck.New().Init(e)
//
//	e.POST("/pets", createPet, reqcheck.ValidateBody(new(CreatePet)))
//
//	func createPet(c echo.Context) error {
//	    vr := reqcheck.MustFromContext(c)
//	    pet, _ := reqcheck.BodyAs[CreatePet](vr)
//	    return c.JSON(http.StatusCreated, pet)
//	}
//
// Schema field names come from json tags; field values set on the prototype
// act as defaults for keys absent from the request.
//
// # Components
//
// A route may bind up to four components, validated in a fixed order: path,
// query, body, form. Validation is fail-fast: the first failing component
// produces the error response and later components are not checked. A
// component with no binding stays absent from the ValidRequest, which is
// distinguishable from a validated empty value.
//
// Path parameter types may be declared without a schema struct:
//
//	e.GET("/pets/:petId", getPet,
//	    reqcheck.ValidatePath(reqcheck.PathParams(reqcheck.PathTypes{"petId": reqcheck.TInt})))
//
// Undeclared parameters validate as strings.
//
// # Explicit Passing
//
// Handlers that prefer the validated value as an argument over the ambient
// context lookup can use Handle or the typed HandleBody:
//
//	e.POST("/pets", reqcheck.HandleBody(func(c echo.Context, pet *CreatePet) error {
//	    return c.JSON(http.StatusCreated, pet)
//	}))
//
// # Error Responses
//
// The ReqCheck extension renders validation failures as HTTP 400 with a
// machine-parseable body: the failing component plus field path and message
// per failing field. Applications that skip reqcheck.New().Init(e) must
// handle *ValidationError in their own Echo error handler.
package reqcheck
