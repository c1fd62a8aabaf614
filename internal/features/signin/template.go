// Package signin — template.go подставляет значения в шаблон ответа.
//
// Шаблон — обычный текст с токенами вида %name%:
//
//	%sayHi%      приветствие по времени суток
//	%br%         перевод строки
//	%day%        длина серии (пусто, если 0)
//	%points%     базовая награда с названием баллов (пусто, если 0)
//	%add_points% награда с бонусом с названием баллов (пусто, если 0)
//	%addRatio%   бонус в процентах со знаком % (пусто, если 0)
//	%all_points% баланс с названием баллов (всегда)
//	%calendar%   отрисованный календарь (пусто, если нет)
//
// Неизвестные токены заменяются пустой строкой.
package signin

import (
	"fmt"
	"regexp"
	"strconv"
)

var tokenRe = regexp.MustCompile(`%([A-Za-z_]+)%`)

// Templates — пользовательские шаблоны по типу ответа.
// Пустой шаблон означает встроенный текст по умолчанию.
type Templates struct {
	Base       string
	Continuous string
	Repeat     string
}

// Formatter рендерит ответы на отметку.
type Formatter struct {
	PointName string // Название баллов, например "积分"
	Templates Templates
}

// NewFormatter создаёт форматтер с названием баллов и шаблонами из конфига.
func NewFormatter(pointName string, templates Templates) *Formatter {
	return &Formatter{PointName: pointName, Templates: templates}
}

// RenderKind рендерит настроенный шаблон для rc.Kind.
func (f *Formatter) RenderKind(rc RenderContext) string {
	switch rc.Kind {
	case KindContinuous:
		return f.Render(f.Templates.Continuous, rc)
	case KindRepeat:
		return f.Render(f.Templates.Repeat, rc)
	default:
		return f.Render(f.Templates.Base, rc)
	}
}

// Render подставляет значения rc в шаблон tmpl за один проход.
// Подставленные значения повторно не разбираются.
// Пустой tmpl заменяется встроенным текстом для rc.Kind.
func (f *Formatter) Render(tmpl string, rc RenderContext) string {
	if tmpl == "" {
		tmpl = f.defaultTemplate(rc.Kind)
	}
	return tokenRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		return f.token(match[1:len(match)-1], rc)
	})
}

func (f *Formatter) token(name string, rc RenderContext) string {
	switch name {
	case "sayHi":
		return rc.Greeting
	case "br":
		return "\n"
	case "day":
		return nonZero(int64(rc.Day), "")
	case "points":
		return nonZero(rc.Points, f.PointName)
	case "add_points":
		return nonZero(rc.AddPoints, f.PointName)
	case "addRatio":
		return nonZero(int64(rc.AddRatio), "%")
	case "all_points":
		return strconv.FormatInt(rc.AllPoints, 10) + f.PointName
	case "calendar":
		return rc.Calendar
	}
	return ""
}

// nonZero возвращает число с суффиксом или пустую строку для нуля.
func nonZero(v int64, suffix string) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10) + suffix
}

// defaultTemplate возвращает встроенный шаблон для типа ответа.
func (f *Formatter) defaultTemplate(kind Kind) string {
	switch kind {
	case KindContinuous:
		return "%calendar%%sayHi%签到成功，获得 %points%。%br%%br%" +
			fmt.Sprintf("因您本周连续签到 %%day%% 天，额外奖励您 %%addRatio%% 的%s。因此一共获得：%%add_points%%", f.PointName)
	case KindRepeat:
		return "你今日已经签到过了哦~"
	default:
		return "%calendar%%sayHi%签到成功，获得 %points%。"
	}
}
