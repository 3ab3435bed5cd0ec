package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/engine"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/logger"
	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/report"
)

func seoCMD(cfgPath *string) *cobra.Command {
	var url string
	var keywords []string
	cmd := &cobra.Command{
		Use:   "seo",
		Short: "Analyze on-page SEO of a URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := newEngine(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			res, err := e.SEOAnalysis(cmd.Context(), url, keywords)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "page url")
	cmd.Flags().StringSliceVar(&keywords, "keywords", nil, "target keywords")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("keywords")
	return cmd
}

func competitorsCMD(cfgPath *string) *cobra.Command {
	var competitors, keywords []string
	cmd := &cobra.Command{
		Use:   "competitors",
		Short: "Analyze up to 5 competitors",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(competitors) > engine.MaxCompetitors {
				return fmt.Errorf("%w: at most %d competitors", engine.ErrInvalidInput, engine.MaxCompetitors)
			}
			e, _, err := newEngine(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e.CompetitorAnalysis(cmd.Context(), competitors, keywords))
		},
	}
	cmd.Flags().StringSliceVar(&competitors, "competitors", nil, "competitor urls")
	cmd.Flags().StringSliceVar(&keywords, "keywords", nil, "target keywords")
	_ = cmd.MarkFlagRequired("competitors")
	_ = cmd.MarkFlagRequired("keywords")
	return cmd
}

func contentCMD(cfgPath *string) *cobra.Command {
	var topic, platform, tone string
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Generate a social media post",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := newEngine(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e.GenerateContent(cmd.Context(), topic, platform, tone))
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "post topic")
	cmd.Flags().StringVar(&platform, "platform", "LinkedIn", "target platform")
	cmd.Flags().StringVar(&tone, "tone", "professional", "writing tone")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func emailCMD(cfgPath *string) *cobra.Command {
	var campaignType string
	var segments []string
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Generate an email campaign for up to 3 segments",
		Long:  "Segments are given as name=characteristics, e.g. --segment \"New Customers=first_time_buyers\".",
		RunE: func(cmd *cobra.Command, args []string) error {
			segs, err := parseSegments(segments)
			if err != nil {
				return err
			}
			e, _, err := newEngine(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e.EmailCampaign(cmd.Context(), campaignType, segs))
		},
	}
	cmd.Flags().StringVar(&campaignType, "type", engine.ComprehensiveCampaignType, "campaign type")
	cmd.Flags().StringArrayVar(&segments, "segment", nil, "audience segment name=characteristics")
	_ = cmd.MarkFlagRequired("segment")
	return cmd
}

func reportCMD(cfgPath *string) *cobra.Command {
	var req dm.AnalysisRequest
	var out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the full analysis pipeline and write a text report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := engine.ValidateRequest(req); err != nil {
				return err
			}
			e, _, err := newEngine(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			r := e.Comprehensive(cmd.Context(), req, func(status string, progress int) {
				logger.Log.Infof("[%3d%%] %s", progress, status)
			})

			var buf bytes.Buffer
			if err := report.Render(&buf, r); err != nil {
				return err
			}
			if out == "" {
				out = report.FileName(req.BrandName, time.Now())
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if r.Degraded() {
				logger.Log.Warnf("报告已生成，但部分阶段降级: %s", out)
			} else {
				logger.Log.Infof("报告已生成: %s", out)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.URL, "url", "", "your website url")
	f.StringSliceVar(&req.Keywords, "keywords", nil, "target keywords")
	f.StringSliceVar(&req.Competitors, "competitors", nil, "competitor urls (1-5)")
	f.StringVar(&req.Industry, "industry", "", "industry")
	f.StringVar(&req.BrandName, "brand", "", "brand name")
	f.StringVarP(&out, "output", "o", "", "output file (default <brand>_marketing_report_<date>.txt)")
	return cmd
}
