package stubapi

import (
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	gojwt "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/AkashQuad/trackqfrontend/core"
	"github.com/AkashQuad/trackqfrontend/core/employee"
	"github.com/AkashQuad/trackqfrontend/core/session"
	"github.com/AkashQuad/trackqfrontend/services/restapi"
)

const claimsContextKey = "employeeToken"

func jwtConfig(conf core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    claimsContextKey,
		Claims:        new(session.Claims),
	}
}

// employeeClaims builds the token payload the client decodes: .NET-style
// claim names carrying the identity and role.
func employeeClaims(conf core.Config, emp employee.Employee) *session.Claims {
	now := time.Now()
	return &session.Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			ExpiresAt: now.Add(conf.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		NameID:     fmt.Sprintf("%d", emp.ID),
		UniqueName: emp.Username,
		Email:      emp.Email,
		Role:       emp.RoleID.String(),
	}
}

func generateToken(conf core.Config, claims *session.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func contextClaims(ctx echo.Context) (session.Claims, error) {
	if token, ok := ctx.Get(claimsContextKey).(*gojwt.Token); ok {
		if claims, ok := token.Claims.(*session.Claims); ok {
			return *claims, nil
		}
	}
	return session.Claims{}, errUnauthorized
}

func contextEmployeeID(ctx echo.Context) (int, error) {
	claims, err := contextClaims(ctx)
	if err != nil {
		return 0, err
	}
	return claims.EmployeeID()
}

// roleMiddleware gates a route group on the caller's role.
func roleMiddleware(roles ...employee.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := contextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			role, ok := claims.RoleID()
			if !ok {
				return errHTTPForbidden
			}
			for _, allowed := range roles {
				if role == allowed {
					return next(ctx)
				}
			}
			return errHTTPForbidden
		}
	}
}

type authAPI struct {
	opts *Options
}

func registerAuthAPI(g *echo.Group, opts *Options) {
	api := authAPI{opts: opts}

	g.POST("/Auth/login", api.login)
	g.POST("/auth/send-otp", api.sendOTP)
	g.POST("/auth/forgot-password", api.forgotPassword)
	g.POST("/auth/verify-otp", api.verifyOTP)
	g.POST("/auth/register", api.register)
	g.POST("/auth/reset-password", api.resetPassword)
}

func (api authAPI) login(ctx echo.Context) error {
	var form restapi.LoginForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}

	emp, err := api.opts.Store.GetEmployeeByEmail(form.Email)
	if err != nil {
		return errAuthenticationFailed
	}
	if err = api.opts.Store.CheckPassword(emp.ID, form.Password); err != nil {
		return errAuthenticationFailed
	}
	if !emp.IsActive {
		return errAccountDeactivated
	}

	token, err := generateToken(api.opts.Conf, employeeClaims(api.opts.Conf, emp))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, restapi.LoginResponse{Token: token})
}

func (api authAPI) sendOTP(ctx echo.Context) error {
	var body struct {
		Email    string `json:"email" validate:"required,email"`
		Username string `json:"username" validate:"required"`
	}
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	body.Email = core.CleanString(body.Email, true /* lower */)
	body.Username = core.CleanString(body.Username)
	if err := core.Validate.Struct(body); err != nil {
		return err
	}
	if api.opts.Store.EmailTaken(body.Email) {
		return ErrEmailExists
	}
	api.issueOTP(body.Email, body.Username, "Confirm your email")
	return ctx.NoContent(http.StatusOK)
}

func (api authAPI) forgotPassword(ctx echo.Context) error {
	var body struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	body.Email = core.CleanString(body.Email, true /* lower */)
	if err := core.Validate.Struct(body); err != nil {
		return err
	}
	// same response whether the account exists or not
	if emp, err := api.opts.Store.GetEmployeeByEmail(body.Email); err == nil {
		api.issueOTP(body.Email, emp.Username, "Reset your password")
	}
	return ctx.NoContent(http.StatusOK)
}

// issueOTP stores a short random code for email and mails it.
func (api authAPI) issueOTP(email, username, subject string) {
	code := strings.ToUpper(uuid.New().String()[:6])
	api.opts.Store.PutOTP(email, code, username, api.opts.Conf.OTPExpirationDelta)

	api.opts.EmailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{{Name: username, Address: email}},
		Subject:     subject,
		TextContent: fmt.Sprintf("Hi %s,\n\nYour one-time code is %s.", username, code),
	})
}

func (api authAPI) verifyOTP(ctx echo.Context) error {
	var body struct {
		Email string `json:"email" validate:"required,email"`
		OTP   string `json:"otp" validate:"required"`
	}
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	if err := core.Validate.Struct(body); err != nil {
		return err
	}
	if _, err := api.opts.Store.CheckOTP(body.Email, body.OTP); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}

func (api authAPI) register(ctx echo.Context) error {
	var form restapi.RegisterForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}
	if err := checkPasswordPolicy(form.Password, form.Username, form.Email); err != nil {
		return err
	}

	otp, err := api.opts.Store.ConsumeOTP(form.Email, form.OTP)
	if err != nil {
		return err
	}
	username := form.Username
	if username == "" {
		username = otp.Username
	}

	if _, err = api.opts.Store.CreateEmployee(employee.Employee{
		Username: username,
		Email:    form.Email,
		RoleID:   employee.RoleUser,
	}, form.Password); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api authAPI) resetPassword(ctx echo.Context) error {
	var form restapi.ResetPasswordForm
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}

	emp, err := api.opts.Store.GetEmployeeByEmail(form.Email)
	if err != nil {
		return ErrBadOTP // do not leak which accounts exist
	}
	if err = checkPasswordPolicy(form.NewPassword, emp.Username, emp.Email); err != nil {
		return err
	}
	if _, err = api.opts.Store.ConsumeOTP(form.Email, form.OTP); err != nil {
		return err
	}
	if err = api.opts.Store.SetPassword(emp.ID, form.NewPassword); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}
