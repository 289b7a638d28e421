/*
 * @Description: 目录导航预览
 * @Author: 安知鱼
 * @Date: 2026-10-17 14:48:20
 * @LastEditTime: 2026-10-17 15:06:11
 * @LastEditors: 安知鱼
 */
package interact

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/parser"
	"github.com/anzhiyu-c/anheyu-interact/pkg/config"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/scrollspy"
)

// tocOptions 预览时模拟的视口参数
type tocOptions struct {
	scrollY      float64
	width        float64
	lineHeight   float64
	navHeight    float64
	headerHeight float64
	jumpTo       string
	// toggleSidebar 模拟点击侧边栏开关
	toggleSidebar bool
}

func newTocCmd(flags *globalFlags) *cobra.Command {
	opts := &tocOptions{}
	cmd := &cobra.Command{
		Use:   "toc <markdown-file|->",
		Short: "预览 Markdown 文档的目录及当前激活标题",
		Long:  "按行号估算标题位置，模拟滚动到 --scroll-y 时目录导航的激活标题。传入 - 从标准输入读取。",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			cfg, err := config.NewConfig(flags.configPath)
			if err != nil {
				return err
			}
			return runToc(cmd.OutOrStdout(), source, scrollSpyOptions(cfg), *opts)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&opts.scrollY, "scroll-y", 0, "模拟的滚动偏移")
	f.Float64Var(&opts.width, "width", 1280, "模拟的视口宽度")
	f.Float64Var(&opts.lineHeight, "line-height", 24, "每行源文本对应的像素高度")
	f.Float64Var(&opts.navHeight, "nav-height", 400, "目录容器的可见高度")
	f.Float64Var(&opts.headerHeight, "header-height", 60, "页面头部高度")
	f.StringVar(&opts.jumpTo, "goto", "", "模拟点击目录条目跳转到指定标题ID")
	f.BoolVar(&opts.toggleSidebar, "toggle-sidebar", false, "模拟点击一次侧边栏开关")
	return cmd
}

func readSource(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("读取文档失败: %w", err)
	}
	return string(data), nil
}

// runToc 渲染文档、建立静态布局并执行一次导航计算
func runToc(w io.Writer, source string, spyOpts scrollspy.Options, opts tocOptions) error {
	doc, err := parser.Render(source)
	if err != nil {
		return err
	}
	if len(doc.Headings) == 0 {
		fmt.Fprintln(w, "文档中没有标题")
		return nil
	}

	layout := scrollspy.NewLineLayout(doc.Headings, scrollspy.LayoutOptions{
		LineHeight: opts.lineHeight,
		Width:      opts.width,
		NavHeight:  opts.navHeight,
	})
	layout.SetScrollY(opts.scrollY)

	nav := scrollspy.NewNavigator(layout, layout, spyOpts)
	defer nav.Close()
	nav.SetHeaderHeight(opts.headerHeight)
	nav.SetSidebarOpen(true)
	if opts.toggleSidebar {
		nav.ToggleSidebar()
	}
	nav.SetHeadings(doc.Headings)

	if opts.jumpTo != "" {
		if !nav.ScrollToHeading(opts.jumpTo) {
			return fmt.Errorf("标题 %q 不存在", opts.jumpTo)
		}
		fmt.Fprintf(w, "跳转到 %s，滚动偏移 %.0f\n", opts.jumpTo, layout.ScrollY())
	}
	nav.Recompute()

	printToc(w, doc.Headings, nav.State())
	return nil
}

func printToc(w io.Writer, headings []model.HeadingEntry, state model.NavigationState) {
	minLevel := 6
	for _, h := range headings {
		if h.Level < minLevel {
			minLevel = h.Level
		}
	}
	for _, h := range headings {
		marker := "  "
		if h.ID == state.ActiveHeadingID {
			marker = "> "
		}
		fmt.Fprintf(w, "%s%s%s (#%s)\n", marker, strings.Repeat("  ", h.Level-minLevel), h.Text, h.ID)
	}
	sidebar := "关闭"
	if state.SidebarOpen {
		sidebar = "打开"
	}
	fmt.Fprintf(w, "侧边栏: %s\n", sidebar)
}
