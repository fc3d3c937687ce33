package detectionService

import (
	"SafeSphere/internal/api/detection"
	detectionRepository "SafeSphere/internal/api/detection/repository"
	"SafeSphere/pkg/sensitive"
	"SafeSphere/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IDetectionService interface {
	Scan(ctx context.Context, profile sensitive.Profile, req detection.ScanRequest) (*detection.ScanResponse, error)
	Redact(ctx context.Context, text string) string
	GetHistory(ctx context.Context, userID string, page, limit int) (*detection.ScanHistoryResponse, error)
}

type detectionService struct {
	detectionRepository detectionRepository.Repository
	utils               utils.IUtils
	log                 *logrus.Logger
}

func NewDetectionService(
	detectionRepository detectionRepository.Repository,
	utils utils.IUtils,
	log *logrus.Logger,
) IDetectionService {
	return &detectionService{
		detectionRepository: detectionRepository,
		utils:               utils,
		log:                 log,
	}
}
