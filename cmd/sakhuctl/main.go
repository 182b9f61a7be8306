package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte, headers map[string]string) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func main() {
	var (
		baseURL = envOr("SAKHU_URL", "http://localhost:8080")
		token   = envOr("SAKHU_TOKEN", "")
		out     = envOr("SAKHU_OUT", "text")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "sakhuctl",
		Short: "CLI operativa del backend (login, keepalive, formularios)",
	}

	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del backend (env SAKHU_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "JWT de sesión (env SAKHU_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{BaseURL: baseURL, Token: token, OutFormat: out, HTTP: &http.Client{Timeout: timeout}}

	// login: imprime el JWT para exportarlo
	var loginEmail, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Login y volcado del token de sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginEmail == "" || loginPassword == "" {
				return fmt.Errorf("--email y --password son requeridos")
			}
			b, _ := json.Marshal(map[string]string{"email": loginEmail, "password": loginPassword})
			status, body, err := cl.do("POST", "/api/auth/login", b, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("login falló: status=%d body=%s", status, string(body))
			}
			var resp struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(body, &resp); err != nil || resp.Token == "" {
				return fmt.Errorf("respuesta sin token: %s", string(body))
			}
			fmt.Println(resp.Token)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email del usuario")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password del usuario")

	// keepalive: dispara el ping como lo haría el scheduler
	var kaToken, kaIP string
	keepaliveCmd := &cobra.Command{
		Use:   "keepalive",
		Short: "Operaciones del keepalive del scheduler",
	}
	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Llamar /internal/keepalive con el token del scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			if kaToken == "" {
				return fmt.Errorf("--scheduler-token es requerido (o env SCHEDULER_TOKEN)")
			}
			h := map[string]string{"Authorization": "Bearer " + kaToken}
			if kaIP != "" {
				h["X-Forwarded-For"] = kaIP
			}
			status, body, err := cl.do("GET", "/internal/keepalive", nil, h)
			if err != nil {
				return err
			}
			cl.print(status, body)
			if status/100 != 2 {
				return fmt.Errorf("keepalive rechazado: status=%d", status)
			}
			return nil
		},
	}
	monitorCmd := &cobra.Command{
		Use:   "monitor",
		Short: "Consultar la frescura de la última corrida del scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			if kaToken == "" {
				return fmt.Errorf("--scheduler-token es requerido (o env SCHEDULER_TOKEN)")
			}
			h := map[string]string{"Authorization": "Bearer " + kaToken}
			status, body, err := cl.do("GET", "/internal/keepalive/monitor", nil, h)
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	keepaliveCmd.PersistentFlags().StringVar(&kaToken, "scheduler-token", envOr("SCHEDULER_TOKEN", ""), "Token del scheduler")
	keepaliveCmd.PersistentFlags().StringVar(&kaIP, "forwarded-for", "", "Valor de X-Forwarded-For (opcional)")
	keepaliveCmd.AddCommand(pingCmd)
	keepaliveCmd.AddCommand(monitorCmd)

	// forms: listados del panel (requiere token ADMIN)
	formsCmd := &cobra.Command{Use: "forms", Short: "Listados de formularios (requiere ADMIN)"}
	for _, kind := range []string{"contact", "donation", "volunteer"} {
		kind := kind
		formsCmd.AddCommand(&cobra.Command{
			Use:   kind,
			Short: "Listar envíos de " + kind,
			RunE: func(cmd *cobra.Command, args []string) error {
				status, body, err := cl.do("GET", "/api/admin/forms/"+kind, nil, nil)
				if err != nil {
					return err
				}
				if status/100 != 2 {
					return fmt.Errorf("listado falló: status=%d body=%s", status, string(body))
				}
				cl.print(status, body)
				return nil
			},
		})
	}

	// metrics del dashboard
	var metricsDays int
	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "Métricas del dashboard (requiere ADMIN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", fmt.Sprintf("/api/admin/metrics?days=%d", metricsDays), nil, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("metrics falló: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	metricsCmd.Flags().IntVar(&metricsDays, "days", 30, "Rango en días")

	root.AddCommand(loginCmd)
	root.AddCommand(keepaliveCmd)
	root.AddCommand(formsCmd)
	root.AddCommand(metricsCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
