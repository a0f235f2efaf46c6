package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stock_api/internal/feature/prices/domain/entity"
)

// DefaultBatchSize は1回のUpsertで書き込むレコード数の既定値です。
const DefaultBatchSize = 1000

// PriceWriter は価格データの書き込みレイヤーを抽象化します。
type PriceWriter interface {
	UpsertBatch(ctx context.Context, records []entity.PriceRecord) error
}

// ArchiveSource は取り込み対象のアーカイブを列挙し、1件ずつ読み出します。
// Read は正常なレコードごとに emit を呼び、不正な行はスキップしてその件数を返します。
type ArchiveSource interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, archive string, emit func(entity.PriceRecord) error) (skipped int, err error)
}

// IngestReport は取り込み結果の集計です。
type IngestReport struct {
	Archives int      // 処理に成功したアーカイブ数
	Records  int      // 書き込んだレコード数
	Skipped  int      // 不正でスキップした行数
	Failed   []string // 失敗したアーカイブ
}

// IngestUsecase はアーカイブから価格データを読み込み、Price Storeに永続化します。
type IngestUsecase struct {
	source    ArchiveSource
	writer    PriceWriter
	batchSize int
}

// NewIngestUsecase は新しい IngestUsecase を作成します。batchSize が0以下の場合は既定値を使います。
func NewIngestUsecase(source ArchiveSource, writer PriceWriter, batchSize int) *IngestUsecase {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &IngestUsecase{source: source, writer: writer, batchSize: batchSize}
}

// IngestAll は全アーカイブを順に取り込みます。
// 1つのアーカイブで失敗しても処理を止めずに次へ進み、最後にエラーをまとめて返します。
func (iu *IngestUsecase) IngestAll(ctx context.Context) (IngestReport, error) {
	var report IngestReport

	archives, err := iu.source.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list archives: %w", err)
	}
	if len(archives) == 0 {
		slog.Warn("no archives found to ingest")
		return report, nil
	}

	var errs []error
	for _, a := range archives {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		started := time.Now()
		n, skipped, err := iu.ingestOne(ctx, a)
		report.Records += n
		report.Skipped += skipped
		if err != nil {
			slog.Error("failed to ingest archive", "archive", a, "records", n, "error", err)
			report.Failed = append(report.Failed, a)
			errs = append(errs, fmt.Errorf("archive %s: %w", a, err))
			continue
		}
		report.Archives++
		slog.Info("archive ingested",
			"archive", a,
			"records", n,
			"skipped", skipped,
			"elapsed", time.Since(started),
		)
	}
	return report, errors.Join(errs...)
}

// ingestOne は1アーカイブを読み込み、batchSize 件ごとにUpsertします。
func (iu *IngestUsecase) ingestOne(ctx context.Context, archive string) (written, skipped int, err error) {
	b := newBatch(iu.batchSize)

	flush := func() error {
		if b.len() == 0 {
			return nil
		}
		recs := b.drain()
		if err := iu.writer.UpsertBatch(ctx, recs); err != nil {
			return err
		}
		written += len(recs)
		return nil
	}

	skipped, err = iu.source.Read(ctx, archive, func(r entity.PriceRecord) error {
		b.add(r)
		if b.len() >= iu.batchSize {
			return flush()
		}
		return nil
	})
	if skipped > 0 {
		slog.Warn("skipped malformed rows", "archive", archive, "skipped", skipped)
	}
	if err != nil {
		return written, skipped, err
	}
	return written, skipped, flush()
}

type recordKey struct {
	symbol string
	date   time.Time
}

// batch は (symbol, date) 単位で重複を除いたレコードのバッファです。
// 同一バッチ内の重複は後勝ちになります。
type batch struct {
	index map[recordKey]int
	recs  []entity.PriceRecord
}

func newBatch(size int) *batch {
	return &batch{
		index: make(map[recordKey]int, size),
		recs:  make([]entity.PriceRecord, 0, size),
	}
}

func (b *batch) add(r entity.PriceRecord) {
	k := recordKey{symbol: r.Symbol, date: r.Date}
	if i, ok := b.index[k]; ok {
		b.recs[i] = r
		return
	}
	b.index[k] = len(b.recs)
	b.recs = append(b.recs, r)
}

func (b *batch) len() int { return len(b.recs) }

func (b *batch) drain() []entity.PriceRecord {
	out := b.recs
	b.recs = make([]entity.PriceRecord, 0, cap(out))
	clear(b.index)
	return out
}
