// Package format renders a rewritten unit back to source text.
//
// Назначение: вывод `named rewrite`. Исходный текст копируется байт в байт,
// заново печатаются только вызовы с заменённым списком аргументов.
// Не делает: полноценного pretty-print и выравнивания.
// Зависимости: internal/ast, internal/source.
package format
