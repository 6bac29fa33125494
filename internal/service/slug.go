package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	pkgerrors "opsboard/backend/pkg/errors"
)

// ── Slug 生成器 ──────────────────────────────────────────────
//
// 职责：为命名实体（看板、用户）从显示名生成 URL 安全且人类可读的唯一标识。
//
// 并发设计：存在性预检只用于挑选起始后缀，真正的原子性边界是插入时的
// 数据库唯一索引。并发创建同名实体时，后到的插入收到唯一索引冲突
// （gorm.ErrDuplicatedKey），换下一个候选继续，最多尝试 maxSlugAttempts 次。
// 不引入跨请求的锁管理器。
// ─────────────────────────────────────────────────────────────

const (
	slugPlaceholder = "item" // 归一化结果为空时的兜底词
	maxSlugAttempts = 20
)

// Slugify 将显示名归一化为基础 slug：
// 小写、去变音符号、非字母数字的连续串折叠为单个连字符、去首尾连字符
func Slugify(name string) string {
	// NFD 分解后去掉所有组合记号，再 NFC 重组，即去除变音符号
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	lastDash := true // 抑制开头的连字符
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// slugCandidate 第 n 个候选：n=0 为基础 slug 本身，之后依次追加 -1、-2…
func slugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// createWithUniqueSlug 以唯一 slug 执行插入
//
// exists 为存在性预检（廉价跳过已占用的候选），insert 执行真正的写入；
// insert 返回 gorm.ErrDuplicatedKey 表示该候选在预检后被并发占用，换下一个。
// 尝试超过 maxSlugAttempts 次后返回 ConflictError。
func createWithUniqueSlug(
	ctx context.Context,
	displayName string,
	exists func(context.Context, string) (bool, error),
	insert func(context.Context, string) error,
) (string, error) {
	base := Slugify(displayName)
	if base == "" {
		base = slugPlaceholder
	}

	for n := 0; n <= maxSlugAttempts; n++ {
		candidate := slugCandidate(base, n)

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if taken {
			continue
		}

		err = insert(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 预检与插入之间被并发占用，换下一个候选
			continue
		}
		return "", err
	}

	return "", pkgerrors.NewConflict(fmt.Sprintf("slug %q 冲突重试超过 %d 次", base, maxSlugAttempts))
}
