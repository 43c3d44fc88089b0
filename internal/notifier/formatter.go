package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"CoinSentinel/internal/model"
)

// FormatOrderNotification formats a confirmed buy order into a Telegram message.
func FormatOrderNotification(order *model.Order, dec *model.Decision) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🟢 <b>CoinSentinel 买入成交</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("交易对: %s\n", order.Symbol))
	b.WriteString(fmt.Sprintf("买入金额: $%s\n", humanize.Commaf(order.Notional)))
	b.WriteString(fmt.Sprintf("订单状态: %s\n", order.Status))
	if order.FilledAvgPrice > 0 {
		b.WriteString(fmt.Sprintf("成交均价: $%s\n", humanize.Commaf(order.FilledAvgPrice)))
	}
	b.WriteString(fmt.Sprintf("订单编号: %s\n\n", order.ID))

	b.WriteString(fmt.Sprintf("📈 <b>触发策略:</b> %s\n", dec.Policy))
	for _, c := range dec.Conditions {
		mark := "✗"
		if c.Met {
			mark = "✓"
		}
		b.WriteString(fmt.Sprintf("  %s %s: %s\n", mark, c.Name, c.Detail))
	}
	b.WriteString(fmt.Sprintf("\n%s", dec.Reason))

	return b.String()
}

// FormatStartup formats the startup account report.
func FormatStartup(symbol string, policy model.Policy, notional float64, acct *model.AccountSnapshot) string {
	var b strings.Builder
	b.WriteString("🚀 <b>CoinSentinel 已启动</b>\n\n")
	b.WriteString(fmt.Sprintf("交易对: %s\n", symbol))
	b.WriteString(fmt.Sprintf("策略: %s\n", policy))
	b.WriteString(fmt.Sprintf("单笔金额: $%s\n\n", humanize.Commaf(notional)))
	b.WriteString(formatAccountLines(acct))
	return b.String()
}

// FormatAccount formats the current account state for display.
func FormatAccount(acct *model.AccountSnapshot) string {
	var b strings.Builder
	b.WriteString("💼 <b>账户状态</b>\n\n")
	b.WriteString(formatAccountLines(acct))
	b.WriteString(fmt.Sprintf("更新时间: %s\n", time.Now().Format("2006-01-02 15:04")))
	return b.String()
}

func formatAccountLines(acct *model.AccountSnapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("现金: $%s\n", humanize.Commaf(acct.Cash)))
	b.WriteString(fmt.Sprintf("总资产: $%s\n", humanize.Commaf(acct.PortfolioValue)))
	b.WriteString(fmt.Sprintf("可用购买力: $%s\n", humanize.Commaf(acct.BuyingPower)))
	b.WriteString(fmt.Sprintf("当日盈亏: %+.2f\n", acct.DailyPL))
	return b.String()
}

// FormatStatus formats the current market snapshot for display.
func FormatStatus(snap *model.Snapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>行情状态</b> | %s\n\n", snap.Symbol))

	if !snap.HasPrice {
		b.WriteString("暂无行情数据\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("当前价格: $%s\n", humanize.Commaf(snap.Price)))
	if snap.HasMean {
		dev := (snap.Price - snap.MinuteMean) / snap.MinuteMean * 100
		b.WriteString(fmt.Sprintf("分钟均价: $%s (偏离 %+.2f%%)\n", humanize.Commaf(snap.MinuteMean), dev))
	}
	if snap.HasCurHour {
		b.WriteString(fmt.Sprintf("本小时低点: $%s\n", humanize.Commaf(snap.CurHour.Low)))
	}
	if snap.HasPrevHour {
		b.WriteString(fmt.Sprintf("上小时低点: $%s\n", humanize.Commaf(snap.PrevHour.Low)))
	}
	if snap.HasDailyRange {
		b.WriteString(fmt.Sprintf("24h 区间: $%s ~ $%s\n", humanize.Commaf(snap.DailyLow), humanize.Commaf(snap.DailyHigh)))
	}
	b.WriteString(fmt.Sprintf("采样时间: %s\n", snap.TakenAt.Format("15:04:05")))
	return b.String()
}

// FormatCooldown formats the cooldown gate state for display.
func FormatCooldown(remaining, interval time.Duration, lastTrade time.Time, traded bool) string {
	var b strings.Builder
	b.WriteString("⏳ <b>冷却状态</b>\n\n")
	b.WriteString(fmt.Sprintf("最小交易间隔: %s\n", interval))
	if !traded {
		b.WriteString("尚未交易，闸门开放 ✅\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("上次交易: %s\n", lastTrade.Format("2006-01-02 15:04:05")))
	if remaining > 0 {
		b.WriteString(fmt.Sprintf("剩余冷却: %s\n", remaining.Round(time.Second)))
	} else {
		b.WriteString("冷却完毕，闸门开放 ✅\n")
	}
	return b.String()
}

// FormatDailySummary formats the end-of-day summary report.
func FormatDailySummary(symbol string, snap *model.Snapshot, acct *model.AccountSnapshot, buys int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>每日汇总</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("交易对: %s\n", symbol))
	if snap.HasPrice {
		b.WriteString(fmt.Sprintf("收盘价格: $%s\n", humanize.Commaf(snap.Price)))
	}
	if snap.HasDailyRange {
		b.WriteString(fmt.Sprintf("24h 区间: $%s ~ $%s\n", humanize.Commaf(snap.DailyLow), humanize.Commaf(snap.DailyHigh)))
	}
	b.WriteString(fmt.Sprintf("今日买入次数: %d\n\n", buys))
	if acct != nil {
		b.WriteString(formatAccountLines(acct))
	}
	return b.String()
}
