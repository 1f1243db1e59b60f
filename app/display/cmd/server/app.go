package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/finance_report/app/display/internal/conf"
	"github.com/iWorld-y/finance_report/app/display/internal/server"
	"github.com/iWorld-y/finance_report/app/display/internal/service"
	"github.com/iWorld-y/finance_report/app/display/internal/usecase"
)

// initApp 手工装配：引擎 -> 用例 -> 服务 -> HTTP Server
func initApp(cs *conf.Server, cr *conf.Report, logger log.Logger) (*kratos.App, func(), error) {
	eng, err := server.NewReportEngine(cr, logger)
	if err != nil {
		return nil, nil, err
	}
	hub := server.NewProgressHub(logger)
	uc := usecase.NewReportUseCase(eng, hub, logger)
	svc := service.NewReportService(uc, logger)
	hs := server.NewHTTPServer(cs, svc, hub, logger)

	cleanup := func() {
		log.NewHelper(logger).Info("Cleaning up report engine")
	}
	return newApp(logger, hs), cleanup, nil
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}
