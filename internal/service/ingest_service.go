package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/apoi01/risyusupport/internal/model"
	"github.com/apoi01/risyusupport/internal/repository"
	"github.com/apoi01/risyusupport/pkg/normalize"
)

// catalogRow シラバスエクスポート 1 行
// 見出しは大学配布の CSV / xlsx に合わせる。欠けている列は空文字のまま
type catalogRow struct {
	Title            string `csv:"講義名"`
	ExternalCode     string `csv:"時間割コード"`
	Term             string `csv:"開講時期"`
	Instructor       string `csv:"担当教員"`
	Faculty          string `csv:"開講学部"`
	WeekdayPeriod    string `csv:"曜日時限"`
	EvaluationMethod string `csv:"評価方法"`
}

// IngestService 講義カタログ投入の業務インターフェース
type IngestService interface {
	// SeedCatalog 設定されたエクスポートファイルを読み込み、講義を投入する
	// 存在しないファイルは警告のみでスキップし、時間割コードが重複する行は
	// 捨てる（先勝ち）。冪等なので起動のたびに呼んでよい
	SeedCatalog(ctx context.Context) error
}

type ingestService struct {
	sources []string
	repo    *repository.Repository
	logger  *zap.Logger
}

// NewIngestService IngestService を作成する
func NewIngestService(sources []string, repo *repository.Repository, logger *zap.Logger) IngestService {
	return &ingestService{sources: sources, repo: repo, logger: logger}
}

func (s *ingestService) SeedCatalog(ctx context.Context) error {
	for _, source := range s.sources {
		rows, err := s.readSource(source)
		if err != nil {
			if os.IsNotExist(err) {
				s.logger.Warn("投入元ファイルが見つからないためスキップ", zap.String("path", source))
				continue
			}
			return fmt.Errorf("投入元 %s の読み込みに失敗: %w", source, err)
		}

		courses := make([]model.Course, 0, len(rows))
		for _, row := range rows {
			courses = append(courses, toCourse(row))
		}

		if err := s.repo.Course.BatchCreateSkipDuplicates(ctx, courses); err != nil {
			return fmt.Errorf("投入元 %s の登録に失敗: %w", source, err)
		}

		s.logger.Info("講義データを投入",
			zap.String("path", source),
			zap.Int("rows", len(courses)),
		)
	}

	total, err := s.repo.Course.Count(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("講義カタログの投入完了", zap.Int64("total", total))

	return nil
}

// readSource 拡張子に応じて CSV / xlsx を読み分ける
func (s *ingestService) readSource(path string) ([]catalogRow, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readCSV(path)
}

// readCSV CSV エクスポートを読み込む
// Excel 保存の CSV は BOM 付きのことがあるので先頭で剥がしておく
func readCSV(path string) ([]catalogRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(data), "\ufeff")

	var rows []catalogRow
	if err := gocsv.UnmarshalString(text, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// readXLSX xlsx エクスポートを読み込む
// 先頭シートの 1 行目を見出しとして扱い、列順は問わない
func readXLSX(path string) ([]catalogRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(cells) < 2 {
		return nil, nil
	}

	colIndex := parseCatalogHeader(cells[0])

	pick := func(row []string, idx int) string {
		if idx >= 0 && idx < len(row) {
			return row[idx]
		}
		return ""
	}

	rows := make([]catalogRow, 0, len(cells)-1)
	for i := 1; i < len(cells); i++ {
		row := cells[i]
		rows = append(rows, catalogRow{
			Title:            pick(row, colIndex["title"]),
			ExternalCode:     pick(row, colIndex["external_code"]),
			Term:             pick(row, colIndex["term"]),
			Instructor:       pick(row, colIndex["instructor"]),
			Faculty:          pick(row, colIndex["faculty"]),
			WeekdayPeriod:    pick(row, colIndex["weekday_period"]),
			EvaluationMethod: pick(row, colIndex["evaluation_method"]),
		})
	}
	return rows, nil
}

// parseCatalogHeader 見出し行から列名→列番号の対応を作る
func parseCatalogHeader(header []string) map[string]int {
	idx := map[string]int{
		"title":             -1,
		"external_code":     -1,
		"term":              -1,
		"instructor":        -1,
		"faculty":           -1,
		"weekday_period":    -1,
		"evaluation_method": -1,
	}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "講義名":
			idx["title"] = i
		case "時間割コード":
			idx["external_code"] = i
		case "開講時期":
			idx["term"] = i
		case "担当教員":
			idx["instructor"] = i
		case "開講学部":
			idx["faculty"] = i
		case "曜日時限":
			idx["weekday_period"] = i
		case "評価方法":
			idx["evaluation_method"] = i
		}
	}
	return idx
}

// toCourse カタログ行をモデルへ変換する。テキスト列は NFKC で正規化する
func toCourse(row catalogRow) model.Course {
	return model.Course{
		Title:            normalize.Z2H(strings.TrimSpace(row.Title)),
		ExternalCode:     strings.TrimSpace(row.ExternalCode),
		Term:             normalize.Z2H(strings.TrimSpace(row.Term)),
		Instructor:       normalize.Z2H(strings.TrimSpace(row.Instructor)),
		Faculty:          normalize.Z2H(strings.TrimSpace(row.Faculty)),
		WeekdayPeriod:    normalize.Z2H(strings.TrimSpace(row.WeekdayPeriod)),
		EvaluationMethod: normalize.Z2H(strings.TrimSpace(row.EvaluationMethod)),
	}
}
