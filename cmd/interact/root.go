/*
 * @Description: 命令行入口
 * @Author: 安知鱼
 * @Date: 2026-10-17 14:05:12
 * @LastEditTime: 2026-10-17 15:10:36
 * @LastEditors: 安知鱼
 */
package interact

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// globalFlags 所有子命令共用的参数
type globalFlags struct {
	configPath string
	kind       string
	token      string
	baseURL    string
}

// NewRootCmd 创建根命令，测试中可以替换输出
func NewRootCmd(out io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "anheyu-interact",
		Short:         "文章与随笔的点赞、评论和目录导航",
		Long:          "anheyu-interact 在命令行中加载文章或随笔，完成点赞、评论、删除评论以及目录导航预览。",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := model.ParseContentKind(flags.kind); err != nil {
				return err
			}
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "配置文件路径（默认 data/conf.ini）")
	pf.StringVar(&flags.kind, "kind", string(model.KindBlog), "内容类型：blog 或 essay")
	pf.StringVar(&flags.token, "token", "", "登录凭证（JWT）")
	pf.StringVar(&flags.baseURL, "base-url", "", "覆盖配置中的远程接口地址")

	rootCmd.AddCommand(
		newShowCmd(flags),
		newLikeCmd(flags),
		newCommentCmd(flags),
		newDeleteCommentCmd(flags),
		newTocCmd(flags),
		newMockServerCmd(flags),
		newTokenCmd(flags),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute 执行根命令，失败时以非零状态退出
func Execute() {
	if err := NewRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp 为一次命令执行构建 App，并在结束时释放资源
func withApp(cmd *cobra.Command, flags *globalFlags, fn func(app *App) error) error {
	app, cleanup, err := NewApp(AppOptions{
		ConfigPath: flags.configPath,
		Kind:       model.ContentKind(flags.kind),
		Token:      flags.token,
		BaseURL:    flags.baseURL,
		Out:        cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	// 关闭事件总线时会把已排队的提示打印完
	defer cleanup()
	return fn(app)
}
