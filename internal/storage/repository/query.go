package repository

import (
	"fmt"
	"strings"

	"github.com/magabrotheeeer/fintask/internal/models"
)

// where накапливает условия WHERE с позиционными параметрами.
type where struct {
	conds []string
	args  []any
}

// add добавляет условие; каждый "?" в cond заменяется на очередной $N.
func (w *where) add(cond string, args ...any) {
	for _, arg := range args {
		w.args = append(w.args, arg)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// addIf добавляет равенство, только если значение непустое.
func (w *where) addIf(column, value string) {
	if value != "" {
		w.add(column+" = ?", value)
	}
}

// scope ограничивает выборку владельцем, если область не глобальная.
func (w *where) scope(column string, s models.Scope) {
	if !s.IsGlobal() {
		w.add(column+" = ?", s.OwnerID)
	}
}

// search добавляет регистронезависимый поиск подстроки.
func (w *where) search(value string, columns ...string) {
	if value == "" {
		return
	}
	pattern := "%" + escapeLike(value) + "%"
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		w.args = append(w.args, pattern)
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", column, len(w.args)))
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// next возвращает номер следующего параметра.
func (w *where) next() int {
	return len(w.args) + 1
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// orderBy строит ORDER BY по разрешённому полю. Неизвестное поле
// заменяется полем по умолчанию.
func orderBy(sort models.Sort, columns map[string]string, fallback, tiebreak string) string {
	column, ok := columns[sort.Field]
	if !ok {
		column = fallback
	}
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s", column, dir, tiebreak)
}
