package xlog

import "errors"

// ErrNotSetup 表示尚未通过 Setup 初始化全局 Logger。
var ErrNotSetup = errors.New("xlog: global logger not set up")
