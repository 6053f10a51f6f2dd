// Package fuzztests houses Go fuzz harnesses for the data-file pipeline
// (source -> lexer -> parser -> writer). They smoke test robustness and
// guard against panics and hangs on arbitrary input.
//
// Назначение: прогонять произвольные байты через лексер, парсер и запись
// дерева, проверяя инварианты из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/data, internal/lexer, internal/parser,
// internal/testkit.

package fuzztests
