// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xid: 采样轮次的分布式唯一 ID，基于 Sonyflake
package util
