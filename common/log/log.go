// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 日志相关接口以及函数
package log

import (
	"io"
	"os"
	"sync"

	"github.com/33cn/splitsteal/types"
	log15 "github.com/inconshreveable/log15"
	colorable "github.com/mattn/go-colorable"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu sync.Mutex
	// rotating file writer, kept so a reset can close it
	fileWriter *lumberjack.Logger
	// nil when only the console is logged to
	fileHandler log15.Handler
	// console output, stderr so command results on stdout stay clean
	consoleOut   io.Writer = colorable.NewColorableStderr()
	consoleLevel           = log15.LvlError.String()
)

// SetLogLevel 设置控制台日志输出级别
func SetLogLevel(logLevel string) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	consoleLevel = logLevel
	install()
}

// SetFileLog 设置文件日志和控制台日志信息
func SetFileLog(log *types.Log) {
	if log == nil {
		log = &types.Log{}
	}
	fillDefaultValue(log)
	if log.LogFile == "" {
		SetLogLevel(log.LogConsoleLevel)
		return
	}
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	consoleLevel = log.LogConsoleLevel
	fileHandler = getFileLogHandler(log)
	install()
}

// SetOutput redirects console logging, the current levels and file log stay
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	consoleOut = w
	install()
}

// install sets the root handler from the current state, mu held
func install() {
	if fileHandler == nil {
		log15.Root().SetHandler(getConsoleLogHandler(consoleLevel))
		return
	}
	log15.Root().SetHandler(log15.MultiHandler(getConsoleLogHandler(consoleLevel), fileHandler))
}

// 保证默认性况下为error级别，防止打印太多日志
func fillDefaultValue(log *types.Log) {
	if log.Loglevel == "" {
		log.Loglevel = log15.LvlError.String()
	}
	if log.LogConsoleLevel == "" {
		log.LogConsoleLevel = log15.LvlError.String()
	}
}

func isWindows() bool {
	return os.PathSeparator == '\\' && os.PathListSeparator == ';'
}

func getConsoleLogHandler(logLevel string) log15.Handler {
	format := log15.TerminalFormat()
	if isWindows() {
		format = log15.LogfmtFormat()
	}
	return log15.LvlFilterHandler(getLevel(logLevel), log15.StreamHandler(consoleOut, format))
}

func getFileLogHandler(log *types.Log) log15.Handler {
	fileWriter = &lumberjack.Logger{
		Filename:   log.LogFile,
		MaxSize:    int(log.MaxFileSize),
		MaxBackups: int(log.MaxBackups),
		MaxAge:     int(log.MaxAge),
		LocalTime:  log.LocalTime,
		Compress:   log.Compress,
	}

	fileh := log15.LvlFilterHandler(
		getLevel(log.Loglevel),
		log15.StreamHandler(fileWriter, log15.LogfmtFormat()),
	)
	if log.CallerFile {
		fileh = log15.CallerFileHandler(fileh)
	}
	if log.CallerFunction {
		fileh = log15.CallerFuncHandler(fileh)
	}
	return fileh
}

func closeFile() {
	if fileWriter != nil {
		fileWriter.Close()
		fileWriter = nil
	}
	fileHandler = nil
}

func getLevel(lvlString string) log15.Lvl {
	lvl, err := log15.LvlFromString(lvlString)
	if err != nil {
		// 日志级别配置不正确时默认为error级别
		return log15.LvlError
	}
	return lvl
}

// New new
func New(ctx ...interface{}) log15.Logger {
	return log15.Root().New(ctx...)
}
