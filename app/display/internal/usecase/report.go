package usecase

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/catalog"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/document"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/engine"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

const (
	ReasonInvalidInput     = "INVALID_INPUT"
	ReasonReportInProgress = "REPORT_IN_PROGRESS"
	ReasonExportFailed     = "EXPORT_FAILED"
)

// Generator 报告生成引擎
type Generator interface {
	Run(ctx context.Context, opts engine.RunOptions) (*model.Report, error)
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	ReportID string  `json:"report_id"`
	Progress float64 `json:"progress"`
	Status   string  `json:"status"`
}

// ProgressPublisher 进度订阅方，只接收不回写
type ProgressPublisher interface {
	Publish(ev ProgressEvent)
}

// GenerateResult 生成结果
type GenerateResult struct {
	ID string
	*document.Export
}

// ReportUseCase 报告业务逻辑，同一时间只运行一份报告
type ReportUseCase struct {
	gen     Generator
	pub     ProgressPublisher
	running atomic.Bool
	now     func() time.Time
	log     *log.Helper
}

// NewReportUseCase 创建报告业务逻辑实例，pub 可为 nil
func NewReportUseCase(gen Generator, pub ProgressPublisher, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{gen: gen, pub: pub, now: time.Now, log: log.NewHelper(logger)}
}

// Generate 校验请求、生成报告并导出
func (uc *ReportUseCase) Generate(ctx context.Context, req *model.GenerateRequest) (*GenerateResult, error) {
	if err := model.ValidateRequest(req); err != nil {
		return nil, errors.BadRequest(ReasonInvalidInput, err.Error()).WithCause(err)
	}
	if err := catalog.CheckTopics(req.Topics); err != nil {
		return nil, errors.BadRequest(ReasonInvalidInput, err.Error()).WithCause(err)
	}

	if !uc.running.CompareAndSwap(false, true) {
		return nil, errors.Conflict(ReasonReportInProgress, "a report is already being generated")
	}
	defer uc.running.Store(false)

	id := uuid.NewString()
	uc.log.WithContext(ctx).Infof("开始生成报告 %s: company=%s topics=%d", id, req.Profile.Name, len(req.Topics))

	// 报告一旦开始就跑完，不随请求取消
	report, err := uc.gen.Run(context.WithoutCancel(ctx), engine.RunOptions{
		ReportID:   id,
		Title:      req.Title,
		Profile:    req.Profile,
		Categories: catalog.Comprehensive(req.Topics),
		ProgressCallback: func(progress float64, status string) {
			if uc.pub != nil {
				uc.pub.Publish(ProgressEvent{ReportID: id, Progress: progress, Status: status})
			}
		},
	})
	if stderrors.Is(err, engine.ErrNoTopics) {
		return nil, errors.BadRequest(ReasonInvalidInput, err.Error())
	}
	if err != nil {
		return nil, err
	}

	exp, err := document.Build(report, uc.now())
	if err != nil {
		uc.log.WithContext(ctx).Errorf("导出报告 %s 失败: %v", id, err)
		return nil, errors.InternalServer(ReasonExportFailed, "failed to render report").WithCause(err)
	}
	return &GenerateResult{ID: report.ID, Export: exp}, nil
}

// Running 是否有报告正在生成
func (uc *ReportUseCase) Running() bool {
	return uc.running.Load()
}

// Topics 话题目录
func (uc *ReportUseCase) Topics() []catalog.Category {
	return catalog.Categories()
}
