/*
 * @Description: 内容交互相关的子命令
 * @Author: 安知鱼
 * @Date: 2026-10-17 14:31:07
 * @LastEditTime: 2026-10-17 15:02:44
 * @LastEditors: 安知鱼
 */
package interact

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/parser"
	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/strutil"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/idgen"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/thread"
	"github.com/anzhiyu-c/anheyu-interact/pkg/store"
)

const commentPreviewRunes = 80

func parseContentID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("无效的内容ID: %q", s)
	}
	return uint(id), nil
}

// parseCommentID 同时接受数字ID和评论的公共ID
func parseCommentID(s string) (uint, error) {
	if id, err := strconv.ParseUint(s, 10, 64); err == nil && id > 0 {
		return uint(id), nil
	}
	id, err := idgen.DecodePublicIDOfType(s, idgen.EntityTypeComment)
	if err != nil {
		return 0, fmt.Errorf("无效的评论ID %q: %w", s, err)
	}
	return id, nil
}

func newShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show [content-id]",
		Short: "加载内容并展示点赞与评论",
		Long:  "加载一篇文章或随笔并按两级线程展示评论。随笔类型不传ID时展示整个随笔列表。",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(app *App) error {
				ctx := cmd.Context()
				if len(args) == 0 {
					if app.engine.Kind() != model.KindEssay {
						return fmt.Errorf("文章类型必须指定内容ID")
					}
					states, err := app.engine.LoadFeed(ctx)
					if err != nil {
						return err
					}
					for _, st := range states {
						printState(app.out, st)
					}
					return nil
				}

				id, err := parseContentID(args[0])
				if err != nil {
					return err
				}
				s, err := app.engine.Load(ctx, id)
				if err != nil {
					return err
				}
				printState(app.out, s.GetState())
				return nil
			})
		},
	}
}

func newLikeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "like <content-id>",
		Short: "点赞或取消点赞",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseContentID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *App) error {
				ctx := cmd.Context()
				s, err := app.engine.Load(ctx, id)
				if err != nil {
					return err
				}
				if err := app.engine.ToggleLike(ctx, id); err != nil {
					return err
				}
				printLike(app.out, s.GetState().Item)
				return nil
			})
		},
	}
}

func newCommentCmd(flags *globalFlags) *cobra.Command {
	var replyTo string
	cmd := &cobra.Command{
		Use:   "comment <content-id> <content>",
		Short: "发表评论或回复",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseContentID(args[0])
			if err != nil {
				return err
			}
			var parentID *uint
			if replyTo != "" {
				pid, err := parseCommentID(replyTo)
				if err != nil {
					return err
				}
				parentID = &pid
			}
			return withApp(cmd, flags, func(app *App) error {
				ctx := cmd.Context()
				if _, err := app.engine.Load(ctx, id); err != nil {
					return err
				}
				c, err := app.engine.SubmitComment(ctx, id, parentID, args[1])
				if err != nil {
					return err
				}
				app.out.Printf("评论已发布: %s\n", commentLabel(c.ID))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "回复的评论ID（数字或公共ID）")
	return cmd
}

func newDeleteCommentCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-comment <content-id> <comment-id>",
		Short: "删除评论（仅管理员）",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseContentID(args[0])
			if err != nil {
				return err
			}
			commentID, err := parseCommentID(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *App) error {
				ctx := cmd.Context()
				if _, err := app.engine.Load(ctx, id); err != nil {
					return err
				}
				return app.engine.DeleteComment(ctx, id, commentID)
			})
		},
	}
}

func commentLabel(id uint) string {
	publicID, err := idgen.GeneratePublicID(id, idgen.EntityTypeComment)
	if err != nil {
		return fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("#%d (%s)", id, publicID)
}

func printLike(w io.Writer, item model.ContentItem) {
	mark := "♡"
	if item.IsLiked {
		mark = "♥"
	}
	fmt.Fprintf(w, "%s %d\n", mark, item.LikeCount)
}

// printState 打印一个内容条目及其两级评论线程
func printState(w io.Writer, st store.State) {
	item := st.Item
	title := item.Title
	if title == "" {
		title = strutil.Truncate(strutil.SingleLine(item.Content), 40)
	}
	if item.Recommend {
		title = "[推荐] " + title
	}
	fmt.Fprintf(w, "== %s #%d %s\n", item.Kind, item.ID, title)
	printLike(w, item)
	fmt.Fprintf(w, "评论 %d 条\n", len(st.Comments))

	for _, t := range thread.Group(st.Comments) {
		printComment(w, 0, t.Root, "")
		for _, r := range t.Replies {
			printComment(w, 1, r.Comment, r.ReplyTo)
		}
	}
}

func printComment(w io.Writer, depth int, c model.Comment, replyTo string) {
	indent := strings.Repeat("    ", depth)
	author := c.Author.Nickname
	if c.IsAdminAuthor {
		author += " [博主]"
	}
	if replyTo != "" {
		author += " 回复 @" + replyTo
	}
	body := parser.Preview(c.ContentHTML, commentPreviewRunes)
	if body == "" {
		body = strutil.Truncate(strutil.SingleLine(c.Content), commentPreviewRunes)
	}
	fmt.Fprintf(w, "%s- %s %s %s: %s\n", indent, commentLabel(c.ID), c.CreatedAt.Format("2006-01-02 15:04"), author, body)
}
