// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/DarthRevanXX/assignment-front/internal/ui/styles"
)

func TestToast_ShowAndExpire(t *testing.T) {
	toast := NewToast(styles.NewTheme("dark"))

	if toast.Visible() {
		t.Fatal("toast starts hidden")
	}

	cmd := toast.Show(ToastError, "boom")
	if cmd == nil {
		t.Fatal("Show must return an expiry command")
	}
	if !toast.Visible() || toast.Message() != "boom" {
		t.Errorf("visible=%v message=%q", toast.Visible(), toast.Message())
	}

	toast.Update(ToastExpiredMsg{ID: 1})
	if toast.Visible() {
		t.Error("matching expiry must hide the toast")
	}
}

func TestToast_StaleExpiryIgnored(t *testing.T) {
	toast := NewToast(styles.NewTheme("dark"))

	toast.Show(ToastError, "first")
	toast.Show(ToastInfo, "second")

	// The first toast's timer firing must not dismiss the second message.
	toast.Update(ToastExpiredMsg{ID: 1})
	if !toast.Visible() {
		t.Error("stale expiry dismissed a newer toast")
	}
	toast.Update(ToastExpiredMsg{ID: 2})
	if toast.Visible() {
		t.Error("current expiry should dismiss the toast")
	}
}

func TestExpiryBanner_View(t *testing.T) {
	banner := NewExpiryBanner(styles.NewTheme("dark"))

	if banner.View() != "" {
		t.Error("hidden banner renders nothing")
	}

	banner.Show(5)
	if !strings.Contains(banner.View(), "5 minutes") {
		t.Errorf("banner = %q, want remaining minutes", banner.View())
	}

	banner.Show(1)
	if !strings.Contains(banner.View(), "1 minute.") && !strings.Contains(banner.View(), "1 minute ") {
		t.Errorf("banner = %q, want singular minute", banner.View())
	}

	banner.Hide()
	if banner.Visible() {
		t.Error("Hide should clear visibility")
	}
}
