package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"placementdesk/internal/mailer"
	"placementdesk/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

type applicationStore interface {
	Applications(ctx context.Context) ([]*types.JobApplication, error)
	ApplicationByID(ctx context.Context, id string) (*types.JobApplication, error)
	ApplicationByReg(ctx context.Context, reg string) (*types.JobApplication, error)
	UpdateApplicationFields(ctx context.Context, id string, fields map[string]any) error
}

type companyStore interface {
	Companies(ctx context.Context) ([]*types.Company, error)
	CompanyByID(ctx context.Context, id string) (*types.Company, error)
	UpdateCompany(ctx context.Context, id string, company *types.Company) error
	DeleteCompany(ctx context.Context, id string) error
}

type proofStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	logger       *logrus.Logger
	config       *types.Config
	applications applicationStore
	companies    companyStore
	proofs       proofStore
	mailer       mailer.Mailer
	limiter      Limiter

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	applications applicationStore,
	companies companyStore,
	proofs proofStore,
	mail mailer.Mailer,
	limiter Limiter,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger:       logger,
		config:       config,
		applications: applications,
		companies:    companies,
		proofs:       proofs,
		mailer:       mail,
		limiter:      limiter,
		cookie:       securecookie.New(hashKey, blockKey),

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/api/v1/admin/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/api/v1/admin/logout", s.handleLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAdmin)

		r.HandleFunc("/api/v1/jobApplication/getall", s.handleListApplications, http.MethodGet)
		r.HandleFunc("/api/v1/jobApplication/detail/:reg", s.handleApplicationDetail, http.MethodGet)
		r.HandleFunc("/api/v1/jobApplication/update/:id", s.handleUpdateApplication, http.MethodPut)
		r.HandleFunc("/api/v1/jobApplication/export.csv", s.handleExportCSV, http.MethodGet)

		r.HandleFunc("/api/v1/company/all", s.handleListCompanies, http.MethodGet)
		r.HandleFunc("/api/v1/company/get/:id", s.handleGetCompany, http.MethodGet)
		r.HandleFunc("/api/v1/company/update/:id", s.handleUpdateCompany, http.MethodPut)
		r.HandleFunc("/api/v1/company/delete/:id", s.handleDeleteCompany, http.MethodDelete)

		r.HandleFunc("/api/v1/sendCorrectionEmail", s.handleSendCorrectionEmail, http.MethodPost)
		r.HandleFunc("/api/v1/sendEmail", s.handleSendBulkEmail, http.MethodPost)
	})
}
