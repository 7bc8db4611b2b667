package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/client/syncer"
)

// timeLayouts форматы, которые принимают флаги времени
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// parseTime разбирает время из флага; пустая строка дает нулевое время
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected YYYY-MM-DD or YYYY-MM-DDTHH:MM", s)
}

// await ждет результата мутации и переводит ошибку в понятное пользователю сообщение
func await[T any](ctx context.Context, o *syncer.Outcome[T]) (entity.Entity[T], error) {
	e, err := o.Wait(ctx)
	if err != nil {
		return e, describe(err)
	}
	return e, nil
}

// describe формирует сообщение об ошибке мутации по ее категории
func describe(err error) error {
	var me *syncer.MutationError
	if !errors.As(err, &me) {
		return err
	}

	switch me.Class {
	case syncer.ClassValidation:
		if len(me.Fields) > 0 {
			return fmt.Errorf("%s rejected: %s", me.Op, formatFields(me.Fields))
		}
	case syncer.ClassAuth:
		return fmt.Errorf("%s rejected: session expired. Please run 'fitsync login': %w", me.Op, me.Err)
	case syncer.ClassNotFound:
		return fmt.Errorf("%s failed: record %s not found", me.Op, me.ID)
	case syncer.ClassConflict:
		return fmt.Errorf("%s failed: record %s was changed elsewhere, reload and retry", me.Op, me.ID)
	case syncer.ClassNetwork:
		return fmt.Errorf("%s failed: server unreachable, change rolled back: %w", me.Op, me.Err)
	}
	return fmt.Errorf("%s failed (%s): %w", me.Op, me.Class, me.Err)
}

// formatFields сортирует ошибки полей для стабильного вывода
func formatFields(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return strings.Join(parts, "; ")
}

// marker помечает записи, ожидающие подтверждения сервера
func marker[T any](e entity.Entity[T]) string {
	if e.IsPending() {
		return "*"
	}
	return ""
}

// table печатает выровненную таблицу
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}
