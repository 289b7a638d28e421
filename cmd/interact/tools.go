/*
 * @Description: 调试工具命令：模拟接口、开发 token、版本信息
 * @Author: 安知鱼
 * @Date: 2026-10-17 15:12:40
 * @LastEditTime: 2026-10-17 15:40:18
 * @LastEditors: 安知鱼
 */
package interact

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/anzhiyu-c/anheyu-interact/internal/infra/mockapi"
	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-interact/pkg/config"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/idgen"
)

func newMockServerCmd(flags *globalFlags) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "启动带演示数据的本地模拟接口",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig(flags.configPath)
			if err != nil {
				return err
			}
			if port <= 0 {
				port = cfg.GetInt(config.KeyMockPort)
			}
			srv := mockapi.New()
			srv.SeedDemo(time.Now())
			return srv.Run(fmt.Sprintf("127.0.0.1:%d", port))
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "监听端口（默认读取 Mock.Port）")
	return cmd
}

func newTokenCmd(flags *globalFlags) *cobra.Command {
	var (
		userID   uint
		nickname string
		admin    bool
		ttl      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "使用本地 JWT Secret 签发开发用的登录凭证",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig(flags.configPath)
			if err != nil {
				return err
			}
			if err := idgen.InitSqidsEncoderWithSeed(cfg.GetString(config.KeySqidsSeed)); err != nil {
				return err
			}
			viewer := model.Viewer{UserID: userID, Nickname: nickname, UserGroupID: 2}
			if admin {
				viewer.UserGroupID = model.AdminUserGroupID
			}
			token, err := auth.GenerateToken(viewer, []byte(cfg.GetString(config.KeyJWTSecret)), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	f := cmd.Flags()
	f.UintVar(&userID, "user-id", mockapi.DemoUser.UserID, "用户ID")
	f.StringVar(&nickname, "nickname", mockapi.DemoUser.Nickname, "昵称")
	f.BoolVar(&admin, "admin", false, "签发管理员身份")
	f.DurationVar(&ttl, "ttl", time.Hour, "有效期")
	return cmd
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "打印版本信息",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出")
	return cmd
}
