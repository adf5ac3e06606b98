package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/Cleverson128/METODO-VAP/internal/model"
	"github.com/Cleverson128/METODO-VAP/internal/repository"
	"github.com/Cleverson128/METODO-VAP/internal/util"
	"github.com/Cleverson128/METODO-VAP/pkg/logger"

	"go.uber.org/zap"
)

// ContentService manages module media: videos and exercise files
// uploaded by the admin panel.
type ContentService struct {
	ModuleRepo *repository.ModuleRepository
	Storage    *StorageService
}

func NewContentService(moduleRepo *repository.ModuleRepository, storage *StorageService) *ContentService {
	return &ContentService{
		ModuleRepo: moduleRepo,
		Storage:    storage,
	}
}

// UploadModuleVideo stores a module video and probes its duration to
// refresh the module's estimated minutes.
func (s *ContentService) UploadModuleVideo(ctx context.Context, moduleID uint, file *multipart.FileHeader) (*model.CourseModule, error) {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		return nil, util.ErrModuleNotFound
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// ffprobe needs a file on disk; stage the upload in a temp file
	// before pushing it to storage.
	tmp, err := os.CreateTemp("", "vap-video-*"+filepath.Ext(file.Filename))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("videos/modulo-%02d%s", module.ID, filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(ctx, filename, tmp, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	module.VideoURL = url

	if info, err := util.GetVideoInfo(tmp.Name()); err == nil {
		module.EstimatedMinutes = info.EstimatedMinutes()
	} else {
		logger.Log.Warn("probing module video", zap.Uint("module", moduleID), zap.Error(err))
	}

	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}

	return module, nil
}

// UploadExerciseFile stores a module's exercise sheet.
func (s *ContentService) UploadExerciseFile(ctx context.Context, moduleID uint, file *multipart.FileHeader) (*model.CourseModule, error) {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		return nil, util.ErrModuleNotFound
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	filename := fmt.Sprintf("exercicios/modulo-%02d%s", module.ID, filepath.Ext(file.Filename))
	if _, err := s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type")); err != nil {
		return nil, err
	}

	module.ExerciseFile = filename
	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}

	return module, nil
}
