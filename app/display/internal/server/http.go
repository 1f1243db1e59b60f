package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iWorld-y/finance_report/app/display/internal/conf"
	"github.com/iWorld-y/finance_report/app/display/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.ReportService, hub *ProgressHub, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		// 报告生成耗时较长，默认不设超时
		http.Timeout(0),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	s.RegisterHTTP(srv)
	srv.Handle("/v1/progress", hub)
	srv.Handle("/metrics", promhttp.Handler())
	return srv
}
