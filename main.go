/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-17 15:44:02
 * @LastEditors: 安知鱼
 */
package main

import "github.com/anzhiyu-c/anheyu-interact/cmd/interact"

func main() {
	interact.Execute()
}
