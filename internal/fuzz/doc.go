// Package fuzztests houses Go fuzz harnesses for the named-argument front end
// (source -> lexer -> parser) and for the whole analysis pipeline with the
// rewrite plugin attached. They guard against panics and hangs on arbitrary
// inputs.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер,
// семантику и переписывание вызовов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests
