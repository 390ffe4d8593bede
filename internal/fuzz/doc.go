// Package fuzztests houses Go fuzz harnesses for the parse and check path
// (source -> goja -> ast -> rules). They guard against panics and hangs on
// arbitrary input: a linter that crashes on a broken config file is no help.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
