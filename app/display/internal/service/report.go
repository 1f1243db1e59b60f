package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/finance_report/app/display/internal/usecase"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/catalog"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

const (
	OperationGenerateReport = "/display.v1.Report/GenerateReport"
	OperationListTopics     = "/display.v1.Report/ListTopics"
	OperationGetStatus      = "/display.v1.Report/GetStatus"
)

type GenerateReportRequest struct {
	Title     string               `json:"title"`
	Company   model.CompanyProfile `json:"company"`
	Topics    []string             `json:"topics"`
	AllTopics bool                 `json:"all_topics"`
}

type GenerateReportReply struct {
	Id       string `json:"id"`
	Markdown string `json:"markdown"`
	Html     string `json:"html"`
	FileName string `json:"file_name"`
}

type ListTopicsRequest struct{}

type ListTopicsReply struct {
	Categories []catalog.Category `json:"categories"`
}

type GetStatusRequest struct{}

type GetStatusReply struct {
	Running bool `json:"running"`
}

type ReportService struct {
	uc  *usecase.ReportUseCase
	log *log.Helper
}

func NewReportService(uc *usecase.ReportUseCase, logger log.Logger) *ReportService {
	return &ReportService{uc: uc, log: log.NewHelper(logger)}
}

// RegisterHTTP 注册路由
func (s *ReportService) RegisterHTTP(srv *khttp.Server) {
	r := srv.Route("/")
	r.POST("/v1/reports", s.generateReportHandler)
	r.GET("/v1/topics", s.listTopicsHandler)
	r.GET("/v1/status", s.getStatusHandler)
}

func (s *ReportService) GenerateReport(ctx context.Context, req *GenerateReportRequest) (*GenerateReportReply, error) {
	topics := req.Topics
	if req.AllTopics {
		topics = catalog.Topics()
	}

	res, err := s.uc.Generate(ctx, &model.GenerateRequest{
		Title:   req.Title,
		Profile: req.Company,
		Topics:  topics,
	})
	if err != nil {
		s.log.WithContext(ctx).Warnf("generate report for %q failed: %v", req.Company.Name, err)
		return nil, err
	}
	return &GenerateReportReply{
		Id:       res.ID,
		Markdown: res.Markdown,
		Html:     res.HTML,
		FileName: res.FileName,
	}, nil
}

func (s *ReportService) ListTopics(ctx context.Context, req *ListTopicsRequest) (*ListTopicsReply, error) {
	return &ListTopicsReply{Categories: s.uc.Topics()}, nil
}

// GetStatus 是否有报告正在生成，界面据此禁用提交按钮
func (s *ReportService) GetStatus(ctx context.Context, req *GetStatusRequest) (*GetStatusReply, error) {
	return &GetStatusReply{Running: s.uc.Running()}, nil
}

func (s *ReportService) generateReportHandler(ctx khttp.Context) error {
	var in GenerateReportRequest
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	khttp.SetOperation(ctx, OperationGenerateReport)
	h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.GenerateReport(ctx, req.(*GenerateReportRequest))
	})
	out, err := h(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(200, out.(*GenerateReportReply))
}

func (s *ReportService) listTopicsHandler(ctx khttp.Context) error {
	var in ListTopicsRequest
	khttp.SetOperation(ctx, OperationListTopics)
	h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.ListTopics(ctx, req.(*ListTopicsRequest))
	})
	out, err := h(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(200, out.(*ListTopicsReply))
}

func (s *ReportService) getStatusHandler(ctx khttp.Context) error {
	var in GetStatusRequest
	khttp.SetOperation(ctx, OperationGetStatus)
	h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.GetStatus(ctx, req.(*GetStatusRequest))
	})
	out, err := h(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(200, out.(*GetStatusReply))
}
